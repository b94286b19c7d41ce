package repositories

import (
	"fmt"
	"sync"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository
// for tests and local development without a database.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// NewMockOrderRepository creates a new, empty MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*models.Order),
	}
}

// Create stores an order and its items in memory.
func (m *MockOrderRepository) Create(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

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
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

// GetByID retrieves an order by its ID.
func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("order with ID %s not found", id))
	}
	copied := *order
	return &copied, nil
}

// UpdateStatus transitions a stored order to the given status.
func (m *MockOrderRepository) UpdateStatus(id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("order with ID %s not found", id))
	}
	order.Status = status
	return nil
}

// TotalSold sums item quantities over finished orders.
func (m *MockOrderRepository) TotalSold() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, order := range m.orders {
		if order.Status != models.OrderStatusFinished {
			continue
		}
		for _, item := range order.Items {
			total += int64(item.Quantity)
		}
	}
	return total, nil
}
