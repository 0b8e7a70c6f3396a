package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// DemoEmail and DemoPassword log in as the seeded demo customer.
const (
	DemoEmail    = "demo@storefront.local"
	DemoPassword = "password"
)

func init() {
	Register("customers", SeedCustomers)
}

// SeedCustomers creates the demo customer if it does not exist.
func SeedCustomers(ctx context.Context, db *gorm.DB, _ storage.Disk) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Customer{}).Where("email = ?", DemoEmail).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(&models.Customer{
		Name:        "Demo Customer",
		Email:       DemoEmail,
		Password:    hash,
		PhoneNumber: "081234567890",
		Address:     "Jl. Merdeka No. 1, Bandung",
	}).Error
}
