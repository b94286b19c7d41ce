package handlers

import (
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the public catalog.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/products", h.HandleGetProducts)
}

// HandleGetCategories returns all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.GetAllCategories()
	if err != nil {
		return respondError(c, "Error getting categories", err)
	}
	return c.JSON(categories)
}

// HandleGetProducts returns all products.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.GetAllProducts()
	if err != nil {
		return respondError(c, "Error getting products", err)
	}
	return c.JSON(products)
}
