package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t, &models.Customer{}, &models.Category{}, &models.Product{})
	disk, err := storage.New(ctx, config.Storage{Disk: "local", LocalRoot: t.TempDir(), URL: "http://cdn.test/storage"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, seeders.Run(ctx, db, disk, &out))
	require.NoError(t, seeders.Run(ctx, db, disk, &out))
	assert.Contains(t, out.String(), "✓ catalog")

	var categories, products int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Product{}).Count(&products)
	assert.EqualValues(t, 3, categories)
	assert.EqualValues(t, 7, products)

	exists, err := disk.Exists(ctx, seeders.CatalogPath)
	require.NoError(t, err)
	assert.True(t, exists)

	var p models.Product
	require.NoError(t, db.Where("name = ?", "Kemeja Batik Parang").First(&p).Error)
	assert.Equal(t, "http://cdn.test/storage/products/kemeja-batik-parang.jpg", p.ImageURL)
	assert.Equal(t, int64(185000), p.Price)

	var c models.Customer
	require.NoError(t, db.Where("email = ?", seeders.DemoEmail).First(&c).Error)
	assert.True(t, auth.CheckPassword(c.Password, seeders.DemoPassword))
}

func TestCatalogFromDisk(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t, &models.Category{}, &models.Product{})
	disk, err := storage.New(ctx, config.Storage{Disk: "local", LocalRoot: t.TempDir(), URL: "http://cdn.test"})
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, seeders.CatalogPath, []byte(`{"categories":[{"name":"Topi","products":[
		{"name":"Topi Rimba","price":60000,"image":"https://img.test/topi.jpg"}]}]}`)))
	require.NoError(t, seeders.SeedCatalog(ctx, db, disk))

	var p models.Product
	require.NoError(t, db.Preload("Category").First(&p).Error)
	assert.Equal(t, "Topi Rimba", p.Name)
	assert.Equal(t, "Topi", p.Category.Name)
	assert.Equal(t, "https://img.test/topi.jpg", p.ImageURL)
}

func TestRunOnly(t *testing.T) {
	ctx := context.Background()
	db := testkit.NewDB(t, &models.Customer{}, &models.Category{}, &models.Product{})
	disk, err := storage.New(ctx, config.Storage{Disk: "local", LocalRoot: t.TempDir(), URL: "http://cdn.test"})
	require.NoError(t, err)

	assert.Equal(t, []string{"catalog", "customers"}, seeders.Names())

	var out bytes.Buffer
	require.NoError(t, seeders.Run(ctx, db, disk, &out, "customers"))
	assert.NotContains(t, out.String(), "catalog")

	var products, customers int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.Customer{}).Count(&customers)
	assert.Zero(t, products)
	assert.EqualValues(t, 1, customers)

	assert.ErrorContains(t, seeders.Run(ctx, db, disk, &out, "orders"), `unknown seeder "orders"`)
}
