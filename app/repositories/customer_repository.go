package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindByEmail looks up a customer by their email address.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, notFound("customer by email", err)
	}
	return &c, nil
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound("customer by id", err)
	}
	return &c, nil
}

// EmailTaken reports whether a customer with email already exists.
func (r *CustomerRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("repositories: count customers: %w", err)
	}
	return n > 0, nil
}

// Create persists a new customer. A unique-email violation is a Conflict.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.Conflict, err)
	}
	if err != nil {
		return fmt.Errorf("repositories: create customer: %w", err)
	}
	return nil
}
