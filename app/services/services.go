// Package services holds the storefront's business operations. Services
// return apperr kinds; controllers hand errors to ctx.Fail unchanged.
package services

import (
	"fmt"
	"strconv"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

// ParseID reads a path id. Anything that is not a positive integer is
// reported as NotFound, the same as a missing row.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Wrap(apperr.NotFound, fmt.Errorf("services: bad id %q", raw))
	}
	return uint(id), nil
}
