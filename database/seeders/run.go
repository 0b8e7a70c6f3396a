// Package seeders loads demo data: the product catalog and one customer
// account. Every seeder upserts, so `storefront seed` can be run again
// after the catalog file changes.
package seeders

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// SeederFunc writes one kind of demo data. disk holds editable seed files.
type SeederFunc func(ctx context.Context, db *gorm.DB, disk storage.Disk) error

type seeder struct {
	name string
	run  SeederFunc
}

var (
	mu       sync.Mutex
	registry []seeder
)

// Register appends a seeder. Seeders run in registration order, which for
// init() registration is file-name order within this package.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, seeder{name: name, run: fn})
}

// Names lists registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.name
	}
	return names
}

// Run executes the seeders named in only, or all of them when only is
// empty, stopping at the first failure.
func Run(ctx context.Context, db *gorm.DB, disk storage.Disk, out io.Writer, only ...string) error {
	mu.Lock()
	list := slices.Clone(registry)
	mu.Unlock()

	for _, name := range only {
		if !slices.ContainsFunc(list, func(s seeder) bool { return s.name == name }) {
			return fmt.Errorf("seeders: unknown seeder %q", name)
		}
	}

	ran := 0
	for _, s := range list {
		if len(only) > 0 && !slices.Contains(only, s.name) {
			continue
		}
		if err := s.run(ctx, db, disk); err != nil {
			fmt.Fprintf(out, "  ✗ %s\n", s.name)
			return fmt.Errorf("seeders: %s: %w", s.name, err)
		}
		fmt.Fprintf(out, "  ✓ %s\n", s.name)
		ran++
	}
	if ran == 0 {
		fmt.Fprintln(out, "  nothing to seed")
	}
	return nil
}
