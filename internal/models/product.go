package models

import "time"

// Product represents a sellable item in the store.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID  string    `json:"category_id" gorm:"type:varchar(36);index"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
