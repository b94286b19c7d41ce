package handlers

import (
	"log"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultResponse is the confirmation shape for mutations.
type DefaultResponse struct {
	Message string `json:"message"`
}

// UserResponse is the account shape returned to clients. Credential
// fields are never included.
type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	AddressName  string `json:"address_name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Balance      int64  `json:"balance"`
	Capabilities string `json:"capabilities"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		AddressName:  u.AddressName,
		Address:      u.Address,
		City:         u.City,
		Balance:      u.Balance,
		Capabilities: u.Capabilities,
	}
}

// respondError logs the full error and returns its classified status
// with a user-safe message. Raw store error text never reaches the
// client.
func respondError(c *fiber.Ctx, context string, err error) error {
	log.Printf("%s: %v", context, err)
	return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
		"message": apperrors.Message(err),
	})
}
