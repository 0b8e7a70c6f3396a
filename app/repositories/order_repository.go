package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order. Foreign-key violations surface unchanged.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("repositories: create order: %w", err)
	}
	return nil
}

// ForCustomer lists a customer's orders with their product and customer.
func (r *OrderRepository) ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("repositories: list orders: %w", err)
	}
	return orders, nil
}

// FindWithProduct loads an order and its product.
func (r *OrderRepository) FindWithProduct(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Preload("Product").First(&o, id).Error; err != nil {
		return nil, notFound("order", err)
	}
	return &o, nil
}
