package services

import (
	"log"

	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// AccountEventPublisher publishes account lifecycle events to the
// broker. *rabbitmq.Client satisfies it; a nil publisher disables
// publication.
type AccountEventPublisher interface {
	PublishAccountEvent(event string, payload map[string]interface{}) error
}

// publishAccountEvent sends an account event if a broker is configured.
// Publication failures are logged, never surfaced to callers.
func publishAccountEvent(events AccountEventPublisher, event string, payload map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishAccountEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

// ShippingAddress is the full set of shipping fields; all are required.
type ShippingAddress struct {
	AddressName string `json:"address_name" validate:"required,max=64"`
	PhoneNumber string `json:"phone_number" validate:"required,max=64"`
	Address     string `json:"address" validate:"required,max=128"`
	City        string `json:"city" validate:"required,max=64"`
}

// AccountUpdate carries the full mutable field set for an admin update.
type AccountUpdate struct {
	Name         string `json:"name" validate:"required,max=64"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"max=64"`
	AddressName  string `json:"address_name" validate:"max=64"`
	Address      string `json:"address" validate:"max=128"`
	City         string `json:"city" validate:"max=64"`
	Balance      int64  `json:"balance" validate:"gte=0"`
	Capabilities string `json:"capabilities"`
}

// UserService applies account mutations under caller-identity
// constraints. Admin operations double-check the caller's capability
// even though routing already gates them.
type UserService struct {
	userRepo repositories.UserRepository
	events   AccountEventPublisher
}

// NewUserService creates a new UserService. events may be nil, in
// which case event publication is skipped.
func NewUserService(userRepo repositories.UserRepository, events AccountEventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
	}
}

// UpdateShippingAddress overwrites the caller's four shipping fields in
// a single update.
func (s *UserService) UpdateShippingAddress(caller *models.User, addr ShippingAddress) error {
	caller.AddressName = addr.AddressName
	caller.PhoneNumber = addr.PhoneNumber
	caller.Address = addr.Address
	caller.City = addr.City

	if err := s.userRepo.Update(caller); err != nil {
		return err
	}
	log.Printf("User %s updated shipping address", caller.Email)
	return nil
}

// AdjustBalance applies a signed delta to the caller's balance and
// returns the new value. Out-of-range results are rejected by the
// repository and leave the balance unchanged.
func (s *UserService) AdjustBalance(caller *models.User, delta int64) (int64, error) {
	newBalance, err := s.userRepo.AdjustBalance(caller.ID, delta)
	if err != nil {
		return 0, err
	}
	caller.Balance = newBalance

	log.Printf("User %s updated balance", caller.Email)
	publishAccountEvent(s.events, "account.balance_adjusted", map[string]interface{}{
		"user_id": caller.ID,
		"delta":   delta,
		"balance": newBalance,
	})
	return newBalance, nil
}

// AdminUpdateAccount overwrites the mutable fields of the target
// account. The target must exist.
func (s *UserService) AdminUpdateAccount(admin *models.User, id string, upd AccountUpdate) (*models.User, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.Forbidden("admin capability required")
	}

	target, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	target.Name = upd.Name
	target.Email = upd.Email
	target.PhoneNumber = upd.PhoneNumber
	target.AddressName = upd.AddressName
	target.Address = upd.Address
	target.City = upd.City
	target.Balance = upd.Balance
	if upd.Capabilities != "" {
		target.Capabilities = upd.Capabilities
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}
	log.Printf("User %s updated by admin %s", target.ID, admin.Email)
	return target, nil
}

// DeleteAccount permanently removes the target account. The
// self-reference check runs before any store operation.
func (s *UserService) DeleteAccount(admin *models.User, id string) error {
	if !admin.IsAdmin() {
		return apperrors.Forbidden("admin capability required")
	}
	if id == admin.ID {
		return apperrors.InvalidArgument("cannot delete self")
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	log.Printf("User %s deleted by %s", id, admin.Email)
	publishAccountEvent(s.events, "account.deleted", map[string]interface{}{
		"user_id":    id,
		"deleted_by": admin.ID,
	})
	return nil
}

// GetAccountByID returns the account with the given id.
func (s *UserService) GetAccountByID(admin *models.User, id string) (*models.User, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.Forbidden("admin capability required")
	}
	return s.userRepo.GetByID(id)
}

// GetAllAccounts returns every account.
func (s *UserService) GetAllAccounts(admin *models.User) ([]models.User, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.Forbidden("admin capability required")
	}
	return s.userRepo.GetAll()
}
