package services

import (
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CatalogService serves the public category and product listings.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CatalogService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}
