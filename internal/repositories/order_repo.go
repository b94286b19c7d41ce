package repositories

import "pasar/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	UpdateStatus(id string, status string) error
	// TotalSold sums line-item quantities across orders in the finished
	// state. An empty result sums to zero.
	TotalSold() (int64, error)
}
