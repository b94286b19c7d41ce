package models

import "time"

// Order statuses. Only finished orders count toward sales totals.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusFinished  = "finished"
	OrderStatusCancelled = "cancelled"
)

// Order represents a customer order.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"user_id" gorm:"type:varchar(36);index"`
	Status    string      `json:"status" gorm:"type:varchar(32);not null;default:'pending'"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a single line of an order, referencing a sellable
// product/size combination by its id.
type OrderItem struct {
	ID                    string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID               string    `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductSizeQuantityID string    `json:"product_size_quantity_id" gorm:"type:varchar(36);not null"`
	Quantity              int       `json:"quantity" gorm:"not null" validate:"gt=0"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
