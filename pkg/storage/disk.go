// Package storage is the file store behind catalog seeding and product image
// URLs.
//
// Two drivers are available:
//   - "local": a directory on disk (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.New(ctx, cfg.Storage)
//	raw, err := disk.Get(ctx, "seed/catalog.json")
//	url := disk.URL("products/kaos.jpg")
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/storefront/config"
)

// ErrNotFound is returned by Get for a missing path.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the filesystem driver interface.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	// URL returns the public URL for path.
	URL(path string) string
}

// New builds the disk named by cfg.Disk.
func New(ctx context.Context, cfg config.Storage) (Disk, error) {
	switch cfg.Disk {
	case "", "local":
		return newLocalDisk(cfg.LocalRoot, cfg.URL)
	case "s3":
		return newS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q", cfg.Disk)
	}
}
