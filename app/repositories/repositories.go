// Package repositories wraps the storefront's database access. Every method
// takes the request context and maps gorm.ErrRecordNotFound to an
// apperr.NotFound error.
package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.NotFound, fmt.Errorf("repositories: %s: %w", op, err))
	}
	return fmt.Errorf("repositories: %s: %w", op, err)
}
