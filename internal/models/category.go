package models

import "time"

// Category groups products under a unique title.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"uniqueIndex;type:varchar(64);not null" validate:"required,max=64"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
