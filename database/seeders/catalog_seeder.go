package seeders

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// CatalogPath is where the catalog seed file lives on the storage disk.
const CatalogPath = "seed/catalog.json"

//go:embed catalog.json
var defaultCatalog []byte

func init() {
	Register("catalog", SeedCatalog)
}

type catalogFile struct {
	Categories []struct {
		Name     string `json:"name"`
		Products []struct {
			Name        string `json:"name"`
			Size        string `json:"size"`
			Stock       int    `json:"stock"`
			Price       int64  `json:"price"`
			Description string `json:"description"`
			Image       string `json:"image"`
		} `json:"products"`
	} `json:"categories"`
}

// SeedCatalog upserts categories and products from CatalogPath on disk,
// writing the bundled catalog there first if the file is missing. Relative
// image paths become disk URLs.
func SeedCatalog(ctx context.Context, db *gorm.DB, disk storage.Disk) error {
	exists, err := disk.Exists(ctx, CatalogPath)
	if err != nil {
		return err
	}
	if !exists {
		if err := disk.Put(ctx, CatalogPath, defaultCatalog); err != nil {
			return err
		}
		logger.Info("seeders: wrote default catalog", "path", CatalogPath)
	}

	raw, err := disk.Get(ctx, CatalogPath)
	if err != nil {
		return err
	}
	var catalog catalogFile
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("seeders: parse %s: %w", CatalogPath, err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range catalog.Categories {
			category := models.Category{Name: c.Name}
			if err := tx.Where(models.Category{Name: c.Name}).FirstOrCreate(&category).Error; err != nil {
				return err
			}

			for _, p := range c.Products {
				product := models.Product{}
				err := tx.Where(models.Product{Name: p.Name, CategoryID: category.ID}).
					Assign(models.Product{
						Size:        p.Size,
						Stock:       p.Stock,
						Price:       p.Price,
						Description: p.Description,
						ImageURL:    imageURL(disk, p.Image),
					}).
					FirstOrCreate(&product).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func imageURL(disk storage.Disk, image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return disk.URL(image)
}
