package repositories

import (
	"errors"
	"fmt"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates an order together with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return apperrors.Classify(err)
	}
	return nil
}

// GetByID retrieves an order and its items by order ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("order with ID %s not found", id))
		}
		return nil, apperrors.Classify(err)
	}
	return &order, nil
}

// UpdateStatus transitions an order to the given status.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperrors.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("order with ID %s not found", id))
	}
	return nil
}

// TotalSold sums quantities of line items whose parent order is
// finished, as a single aggregate query.
func (r *GORMOrderRepository) TotalSold() (int64, error) {
	var total int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusFinished).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Classify(err)
	}
	return total, nil
}
