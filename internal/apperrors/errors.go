// Package apperrors defines the error taxonomy shared by repositories,
// services, and handlers: a small set of sentinel kinds that store and
// business errors are remapped into before they reach the HTTP edge.
package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	// ErrUnauthorized indicates the caller presented no or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks a required capability.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates a value-range or self-referential
	// constraint violation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrInternal is an unclassified store or system failure. Its detail
	// is logged server-side and never echoed to the caller.
	ErrInternal = errors.New("internal error")
)

func Unauthorized(msg string) error { return fmt.Errorf("%w: %s", ErrUnauthorized, msg) }

func Forbidden(msg string) error { return fmt.Errorf("%w: %s", ErrForbidden, msg) }

func NotFound(msg string) error { return fmt.Errorf("%w: %s", ErrNotFound, msg) }

func InvalidArgument(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidArgument, msg) }

func Conflict(msg string) error { return fmt.Errorf("%w: %s", ErrConflict, msg) }

// Internal wraps an unclassified error. The original error stays in the
// chain for server-side logging.
func Internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// uniqueViolationPatterns match the uniqueness-violation messages of the
// supported drivers (sqlite, postgres).
var uniqueViolationPatterns = []string{
	"UNIQUE constraint failed",
	"duplicate key value violates unique constraint",
	"SQLSTATE 23505",
}

// Classify remaps a raw store error into the taxonomy. Already
// classified errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrUnauthorized, ErrForbidden, ErrNotFound,
		ErrInvalidArgument, ErrConflict, ErrInternal,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	msg := err.Error()
	for _, pattern := range uniqueViolationPatterns {
		if strings.Contains(msg, pattern) {
			return fmt.Errorf("%w: duplicate value", ErrConflict)
		}
	}
	return Internal(err)
}

// StatusCode maps an error to the HTTP status handlers should return.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns a user-safe message for an error. Internal and
// unclassified errors collapse to a generic message; the caller is
// expected to log the full detail.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInternal) || StatusCode(err) == fiber.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
