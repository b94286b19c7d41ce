package repositories_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database keeps every pooled connection on the
	// same store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newStoredUser(t *testing.T, repo repositories.UserRepository, email string, balance int64) *models.User {
	t.Helper()
	user := &models.User{
		Name:           "user",
		Email:          email,
		PasswordDigest: "digest",
		Salt:           "salt",
		Balance:        balance,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestGORMUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	first := newStoredUser(t, repo, "dup@example.com", 0)

	second := &models.User{
		Name:           "other",
		Email:          "dup@example.com",
		PasswordDigest: "digest",
		Salt:           "salt",
	}
	err := repo.Create(second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The first account remains queryable.
	got, err := repo.GetByEmail("dup@example.com")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestGORMUserRepository_GetNotFound(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	_, err := repo.GetByID("missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.GetByEmail("missing@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMUserRepository_AdjustBalance(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))
	user := newStoredUser(t, repo, "balance@example.com", 100)

	// Positive delta
	newBalance, err := repo.AdjustBalance(user.ID, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(150), newBalance)

	// Negative delta within range
	newBalance, err = repo.AdjustBalance(user.ID, -150)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), newBalance)

	// Zero delta is a no-op success
	newBalance, err = repo.AdjustBalance(user.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), newBalance)
}

func TestGORMUserRepository_AdjustBalanceOutOfRange(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))
	user := newStoredUser(t, repo, "range@example.com", 100)

	// Driving the balance negative is rejected
	_, err := repo.AdjustBalance(user.ID, -101)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "balance out of range")

	// Stored balance is unchanged
	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)

	// Integer overflow is rejected, not wrapped
	_, err = repo.AdjustBalance(user.ID, math.MaxInt64)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	got, err = repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)
}

func TestGORMUserRepository_AdjustBalanceContention(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMUserRepository(db)
	user := newStoredUser(t, repo, "contend@example.com", 100)

	// After each read of the account row, bump the stored balance on the
	// same connection so the compare-and-swap misses its expected value.
	var contentions int
	err := db.Callback().Query().After("gorm:query").Register("bump_after_read", func(tx *gorm.DB) {
		if contentions <= 0 {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.User); !ok {
			return
		}
		contentions--
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE users SET balance = balance + 1 WHERE id = ?", user.ID); err != nil {
			t.Errorf("failed to bump balance: %v", err)
		}
	})
	assert.NoError(t, err)

	// One contended attempt: the first transaction rolls back and the
	// retry lands the delta on the fresh value.
	contentions = 1
	newBalance, err := repo.AdjustBalance(user.ID, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(150), newBalance)

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(150), got.Balance)

	// Sustained contention exhausts the retries and surfaces a conflict.
	contentions = 100
	_, err = repo.AdjustBalance(user.ID, 50)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	contentions = 0

	// Every contended attempt rolled back, so the balance is unchanged.
	got, err = repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(150), got.Balance)
}

func TestGORMUserRepository_AdjustBalanceMissingUser(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))

	_, err := repo.AdjustBalance("missing-id", 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMUserRepository_Delete(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupDB(t))
	user := newStoredUser(t, repo, "delete@example.com", 0)

	assert.NoError(t, repo.Delete(user.ID))

	_, err := repo.GetByID(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again reports not-found
	assert.ErrorIs(t, repo.Delete(user.ID), apperrors.ErrNotFound)
}

func TestGORMOrderRepository_TotalSold(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	total, err := repo.TotalSold()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)

	finished := &models.Order{
		UserID: "user-1",
		Items: []models.OrderItem{
			{ProductSizeQuantityID: "psq-1", Quantity: 3},
			{ProductSizeQuantityID: "psq-2", Quantity: 4},
		},
	}
	assert.NoError(t, repo.Create(finished))
	assert.NoError(t, repo.UpdateStatus(finished.ID, models.OrderStatusFinished))

	// A cancelled order does not count
	cancelled := &models.Order{
		UserID: "user-2",
		Status: models.OrderStatusCancelled,
		Items: []models.OrderItem{
			{ProductSizeQuantityID: "psq-1", Quantity: 10},
		},
	}
	assert.NoError(t, repo.Create(cancelled))

	total, err = repo.TotalSold()
	assert.NoError(t, err)
	assert.Equal(t, int64(7), total)
}
