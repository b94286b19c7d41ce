package services_test

import (
	"testing"

	"pasar/internal/apperrors"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdmin() *models.User {
	return &models.User{
		ID:           "admin-1",
		Name:         "admin",
		Email:        "admin@admin.com",
		Capabilities: models.AdminCapabilities,
	}
}

func newRegularUser() *models.User {
	return &models.User{
		ID:           "user-1",
		Name:         "user",
		Email:        "user@user.com",
		Balance:      100,
		Capabilities: models.DefaultCapabilities,
	}
}

func TestUserService_UpdateShippingAddress(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	caller := newRegularUser()

	mockRepo.On("Update", caller).Return(nil).Once()

	err := userService.UpdateShippingAddress(caller, services.ShippingAddress{
		AddressName: "Home",
		PhoneNumber: "+62811111111",
		Address:     "Jl. Sudirman 1",
		City:        "Jakarta",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Home", caller.AddressName)
	assert.Equal(t, "+62811111111", caller.PhoneNumber)
	assert.Equal(t, "Jl. Sudirman 1", caller.Address)
	assert.Equal(t, "Jakarta", caller.City)
	mockRepo.AssertExpectations(t)
}

func TestUserService_AdjustBalance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	caller := newRegularUser()

	// Successful delta
	mockRepo.On("AdjustBalance", caller.ID, int64(50)).Return(int64(150), nil).Once()
	newBalance, err := userService.AdjustBalance(caller, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(150), newBalance)
	assert.Equal(t, int64(150), caller.Balance)
	mockRepo.AssertExpectations(t)

	// Out-of-range result: error propagates, caller's view unchanged
	mockRepo.On("AdjustBalance", caller.ID, int64(-1000)).
		Return(int64(0), apperrors.InvalidArgument("balance out of range")).Once()
	_, err = userService.AdjustBalance(caller, -1000)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Equal(t, int64(150), caller.Balance)
	mockRepo.AssertExpectations(t)
}

func TestUserService_LifecycleEvents(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	userService := services.NewUserService(mockRepo, mockEvents)
	admin := newAdmin()
	caller := newRegularUser()

	// Balance adjustment publishes the new balance
	mockRepo.On("AdjustBalance", caller.ID, int64(50)).Return(int64(150), nil).Once()
	mockEvents.On("PublishAccountEvent", "account.balance_adjusted", mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["user_id"] == caller.ID && payload["balance"] == int64(150)
	})).Return(nil).Once()

	_, err := userService.AdjustBalance(caller, 50)
	assert.NoError(t, err)

	// Deletion publishes the target and the acting admin
	mockRepo.On("Delete", caller.ID).Return(nil).Once()
	mockEvents.On("PublishAccountEvent", "account.deleted", mock.MatchedBy(func(payload map[string]interface{}) bool {
		return payload["user_id"] == caller.ID && payload["deleted_by"] == admin.ID
	})).Return(nil).Once()

	err = userService.DeleteAccount(admin, caller.ID)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// A failed mutation publishes nothing
	mockRepo.On("AdjustBalance", caller.ID, int64(-1000)).
		Return(int64(0), apperrors.InvalidArgument("balance out of range")).Once()
	_, err = userService.AdjustBalance(caller, -1000)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	mockEvents.AssertNumberOfCalls(t, "PublishAccountEvent", 2)
}

func TestUserService_DeleteAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	admin := newAdmin()

	// Deleting another account succeeds
	mockRepo.On("Delete", "user-1").Return(nil).Once()
	err := userService.DeleteAccount(admin, "user-1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Self-deletion is rejected before the store is touched
	err = userService.DeleteAccount(admin, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "cannot delete self")
	mockRepo.AssertNotCalled(t, "Delete", admin.ID)

	// Missing target propagates not-found
	mockRepo.On("Delete", "ghost").Return(apperrors.NotFound("user with ID ghost not found")).Once()
	err = userService.DeleteAccount(admin, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteAccountForbiddenForNonAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	caller := newRegularUser()

	err := userService.DeleteAccount(caller, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestUserService_AdminUpdateAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	admin := newAdmin()
	target := newRegularUser()

	upd := services.AccountUpdate{
		Name:        "renamed",
		Email:       "renamed@user.com",
		PhoneNumber: "+62822222222",
		AddressName: "Office",
		Address:     "Jl. Thamrin 2",
		City:        "Bandung",
		Balance:     500,
	}

	// Successful full overwrite
	mockRepo.On("GetByID", target.ID).Return(target, nil).Once()
	mockRepo.On("Update", target).Return(nil).Once()
	updated, err := userService.AdminUpdateAccount(admin, target.ID, upd)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "renamed@user.com", updated.Email)
	assert.Equal(t, int64(500), updated.Balance)
	// Capabilities are preserved when the update does not set them
	assert.Equal(t, models.DefaultCapabilities, updated.Capabilities)
	mockRepo.AssertExpectations(t)

	// Missing target: not-found, no write attempted
	mockRepo.On("GetByID", "ghost").Return(nil, apperrors.NotFound("user with ID ghost not found")).Once()
	_, err = userService.AdminUpdateAccount(admin, "ghost", upd)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_AdminUpdateAccountForbiddenForNonAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	caller := newRegularUser()

	_, err := userService.AdminUpdateAccount(caller, "target", services.AccountUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUserService_GetAccountByID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)
	admin := newAdmin()
	target := newRegularUser()

	mockRepo.On("GetByID", target.ID).Return(target, nil).Once()
	got, err := userService.GetAccountByID(admin, target.ID)
	assert.NoError(t, err)
	assert.Equal(t, target, got)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "ghost").Return(nil, apperrors.NotFound("user with ID ghost not found")).Once()
	_, err = userService.GetAccountByID(admin, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)

	// Non-admin caller
	_, err = userService.GetAccountByID(newRegularUser(), target.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUserService_GetAllAccounts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	expected := []models.User{*newRegularUser(), *newAdmin()}
	mockRepo.On("GetAll").Return(expected, nil).Once()

	users, err := userService.GetAllAccounts(newAdmin())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)

	_, err = userService.GetAllAccounts(newRegularUser())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
