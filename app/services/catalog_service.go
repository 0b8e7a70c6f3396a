package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// CatalogService serves products and categories.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

func (s *CatalogService) Products(ctx context.Context, p orm.Page) ([]models.Product, orm.Pagination, error) {
	return s.products.Page(ctx, p)
}

// Product returns the product with id rawID and its category.
func (s *CatalogService) Product(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.products.FindWithCategory(ctx, id)
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

// Category returns the category with id rawID and its products.
func (s *CatalogService) Category(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.categories.FindWithProducts(ctx, id)
}
