package repositories

import "pasar/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	// AdjustBalance applies a signed delta to the account's balance
	// atomically and returns the new balance. A result outside
	// [0, MaxInt64] is rejected with an invalid-argument error and the
	// stored balance is left unchanged.
	AdjustBalance(id string, delta int64) (int64, error)
}
