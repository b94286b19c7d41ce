package handlers

import (
	"fmt"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// UserHandler handles HTTP requests for accounts.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes. Every route requires an
// authenticated caller; admin routes additionally require the admin
// capability.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	users := router.Group("/users", authRequired)
	users.Get("/", h.HandleGetUser)
	users.Get("/shipping_address", h.HandleGetShippingAddress)
	users.Put("/shipping_address", h.HandleUpdateShippingAddress)
	users.Get("/balance", h.HandleGetBalance)
	users.Put("/balance", h.HandleAdjustBalance)
	// "/all" registers before "/:id" so it is not captured as an id.
	users.Get("/all", adminRequired, h.HandleGetAllUsers)
	users.Get("/:id", adminRequired, h.HandleGetUserByID)
	users.Put("/:id", adminRequired, h.HandleAdminUpdateUser)
	users.Delete("/", adminRequired, h.HandleDeleteUser)
}

// HandleGetUser returns the caller's own account.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(toUserResponse(*user))
}

// HandleGetShippingAddress returns the caller's shipping fields.
func (h *UserHandler) HandleGetShippingAddress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"id":           user.ID,
		"address_name": user.AddressName,
		"phone_number": user.PhoneNumber,
		"address":      user.Address,
		"city":         user.City,
	})
}

// HandleUpdateShippingAddress overwrites the caller's shipping fields.
func (h *UserHandler) HandleUpdateShippingAddress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req services.ShippingAddress
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.userService.UpdateShippingAddress(user, req); err != nil {
		return respondError(c, "Error updating shipping address", err)
	}
	return c.JSON(DefaultResponse{Message: "Shipping address updated"})
}

// HandleGetBalance returns the caller's balance.
func (h *UserHandler) HandleGetBalance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"id":      user.ID,
		"balance": user.Balance,
	})
}

// BalanceRequest carries a signed delta to apply to the balance.
type BalanceRequest struct {
	Balance int64 `json:"balance"`
}

// HandleAdjustBalance applies a signed delta to the caller's balance.
func (h *UserHandler) HandleAdjustBalance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req BalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	newBalance, err := h.userService.AdjustBalance(user, req.Balance)
	if err != nil {
		return respondError(c, "Error adjusting balance", err)
	}

	return c.Status(fiber.StatusCreated).JSON(DefaultResponse{
		Message: fmt.Sprintf("Your balance has been updated, current_balance:%d", newBalance),
	})
}

// HandleGetAllUsers returns every account.
func (h *UserHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	users, err := h.userService.GetAllAccounts(admin)
	if err != nil {
		return respondError(c, "Error getting all users", err)
	}

	return c.JSON(lo.Map(users, func(u models.User, _ int) UserResponse {
		return toUserResponse(u)
	}))
}

// HandleGetUserByID returns the account with the given id.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	user, err := h.userService.GetAccountByID(admin, c.Params("id"))
	if err != nil {
		return respondError(c, "Error getting user by ID", err)
	}
	return c.JSON(toUserResponse(*user))
}

// HandleAdminUpdateUser overwrites the mutable fields of the target
// account.
func (h *UserHandler) HandleAdminUpdateUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req services.AccountUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, err := h.userService.AdminUpdateAccount(admin, c.Params("id"), req)
	if err != nil {
		return respondError(c, "Error updating user", err)
	}
	return c.JSON(toUserResponse(*user))
}

// DeleteUserRequest identifies the account to delete.
type DeleteUserRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// HandleDeleteUser permanently removes the identified account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.userService.DeleteAccount(admin, req.ID); err != nil {
		return respondError(c, "Error deleting user", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
