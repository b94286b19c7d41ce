package services

import "pasar/internal/repositories"

// SalesService aggregates sales figures over finished orders.
type SalesService struct {
	orderRepo repositories.OrderRepository
}

// NewSalesService creates a new SalesService.
func NewSalesService(orderRepo repositories.OrderRepository) *SalesService {
	return &SalesService{
		orderRepo: orderRepo,
	}
}

// TotalSold returns the summed quantity of line items across finished
// orders. Zero finished orders yield zero.
func (s *SalesService) TotalSold() (int64, error) {
	return s.orderRepo.TotalSold()
}
