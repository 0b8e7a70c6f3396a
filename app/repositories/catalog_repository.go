package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Page returns one page of products ordered by id.
func (r *ProductRepository) Page(ctx context.Context, p orm.Page) ([]models.Product, orm.Pagination, error) {
	products := []models.Product{}
	q := r.db.WithContext(ctx).Model(&models.Product{}).Order("id")
	pagination, err := orm.Paginate(q, p, &products)
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("repositories: page products: %w", err)
	}
	return products, pagination, nil
}

// FindWithCategory loads a product and its category.
func (r *ProductRepository) FindWithCategory(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return nil, notFound("product", err)
	}
	return &p, nil
}

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category ordered by id, without products.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("repositories: list categories: %w", err)
	}
	return categories, nil
}

// FindWithProducts loads a category and its products.
func (r *CategoryRepository) FindWithProducts(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&c, id).Error
	if err != nil {
		return nil, notFound("category", err)
	}
	return &c, nil
}
