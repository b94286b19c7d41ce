package models

import (
	"strings"
	"time"
)

// Capability is a single permission a user account carries.
type Capability string

const (
	CapabilityRead  Capability = "read"
	CapabilityWrite Capability = "write"
	CapabilityAdmin Capability = "admin"
)

// Capability sets assigned at account creation.
const (
	DefaultCapabilities = "read,write"
	AdminCapabilities   = "read,write,admin"
)

// User represents a customer account with credentials, shipping
// address, and store credit balance.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name  string `json:"name" gorm:"type:varchar(64);not null" validate:"required,max=64"`
	Email string `json:"email" gorm:"uniqueIndex;type:varchar(64);not null" validate:"required,email"`

	// Digest and salt are produced by the credential service and are
	// opaque to the rest of the application. No json tags for security.
	PasswordDigest string `json:"-" gorm:"type:varchar(128);not null"`
	Salt           string `json:"-" gorm:"type:varchar(128);not null"`

	PhoneNumber string `json:"phone_number" gorm:"type:varchar(64)"`
	AddressName string `json:"address_name" gorm:"type:varchar(64)"`
	Address     string `json:"address" gorm:"type:varchar(128)"`
	City        string `json:"city" gorm:"type:varchar(64)"`

	// Balance is store credit in the smallest currency unit. Mutations
	// go through UserRepository.AdjustBalance, which range-checks.
	Balance int64 `json:"balance" gorm:"not null;default:0"`

	// Capabilities is a comma-separated capability set, e.g. "read,write"
	// or "read,write,admin".
	Capabilities string `json:"capabilities" gorm:"type:varchar(64);not null;default:'read,write'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Can reports whether the user's capability set contains c.
func (u *User) Can(c Capability) bool {
	for _, p := range strings.Split(u.Capabilities, ",") {
		if Capability(strings.TrimSpace(p)) == c {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin capability.
func (u *User) IsAdmin() bool {
	return u.Can(CapabilityAdmin)
}
