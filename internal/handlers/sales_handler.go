package handlers

import (
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SalesHandler handles HTTP requests for sales aggregates.
type SalesHandler struct {
	salesService *services.SalesService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(salesService *services.SalesService) *SalesHandler {
	return &SalesHandler{
		salesService: salesService,
	}
}

// RegisterRoutes registers the sales routes with the Fiber app.
func (h *SalesHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sales", h.HandleGetSales)
}

// HandleGetSales returns the total quantity sold across finished orders.
func (h *SalesHandler) HandleGetSales(c *fiber.Ctx) error {
	total, err := h.salesService.TotalSold()
	if err != nil {
		return respondError(c, "Error aggregating sales", err)
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"total": total},
	})
}
