package repositories

import (
	"errors"
	"fmt"
	"math"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new account. A duplicate email surfaces as a
// conflict error.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Capabilities == "" {
		user.Capabilities = models.DefaultCapabilities
	}
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.Classify(err)
	}
	return nil
}

// GetByEmail retrieves an account by its email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user with email %s not found", email))
		}
		return nil, apperrors.Classify(err)
	}
	return &user, nil
}

// GetByID retrieves an account by its ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user with ID %s not found", id))
		}
		return nil, apperrors.Classify(err)
	}
	return &user, nil
}

// GetAll retrieves all accounts.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, apperrors.Classify(err)
	}
	return users, nil
}

// Update saves all mutable fields of an existing account.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return apperrors.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so
		// RowsAffected is checked instead.
		return apperrors.NotFound(fmt.Sprintf("user with ID %s not found", user.ID))
	}
	return nil
}

// Delete permanently removes the account with the given ID.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user with ID %s not found", id))
	}
	return nil
}

// balanceRetries bounds the optimistic update loop in AdjustBalance.
const balanceRetries = 3

var errBalanceContention = errors.New("balance changed concurrently")

// AdjustBalance applies delta to the account's balance inside a
// transaction. The read-check-write is guarded by a compare-and-swap on
// the previously read value and retried on contention, so concurrent
// adjustments serialize instead of losing updates. The range check runs
// against the freshly read row before the write.
func (r *GORMUserRepository) AdjustBalance(id string, delta int64) (int64, error) {
	for attempt := 0; attempt < balanceRetries; attempt++ {
		var newBalance int64
		err := r.db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.First(&user, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound(fmt.Sprintf("user with ID %s not found", id))
				}
				return apperrors.Classify(err)
			}

			if delta > 0 && user.Balance > math.MaxInt64-delta {
				return apperrors.InvalidArgument("balance out of range")
			}
			next := user.Balance + delta
			if next < 0 {
				return apperrors.InvalidArgument("balance out of range")
			}

			res := tx.Model(&models.User{}).
				Where("id = ? AND balance = ?", id, user.Balance).
				Update("balance", next)
			if res.Error != nil {
				return apperrors.Classify(res.Error)
			}
			if res.RowsAffected == 0 {
				return errBalanceContention
			}
			newBalance = next
			return nil
		})
		if errors.Is(err, errBalanceContention) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return newBalance, nil
	}
	return 0, apperrors.Conflict("balance update contention, try again")
}
