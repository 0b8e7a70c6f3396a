// Package orm holds query helpers shared by the repositories.
package orm

import (
	"fmt"
	"math"
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// Page is a requested page: Size rows starting at page Number (1-based).
type Page struct {
	Size   int
	Number int
}

// ParsePage reads the raw page.size / page.number query values. Missing,
// non-numeric or non-positive values fall back to size 5, page 1.
func ParsePage(size, number string) Page {
	p := Page{Size: DefaultPageSize, Number: 1}
	if n, err := strconv.Atoi(size); err == nil && n > 0 {
		p.Size = min(n, MaxPageSize)
	}
	if n, err := strconv.Atoi(number); err == nil && n > 0 {
		p.Number = n
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int { return p.Size * (p.Number - 1) }

// Pagination is the metadata returned next to a page of rows.
type Pagination struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	Page       int   `json:"page"`
	TotalCount int64 `json:"total_count"`
	TotalPage  int   `json:"total_page"`
}

// TotalPages is ceil(count/limit).
func TotalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(limit)))
}

// Paginate counts the rows matched by q, then loads page p into dest.
// q must already carry its Model and any filters.
func Paginate(q *gorm.DB, p Page, dest any) (Pagination, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Pagination{}, fmt.Errorf("orm: count: %w", err)
	}

	if err := q.Session(&gorm.Session{}).Limit(p.Size).Offset(p.Offset()).Find(dest).Error; err != nil {
		return Pagination{}, fmt.Errorf("orm: find page: %w", err)
	}

	return Pagination{
		Limit:      p.Size,
		Offset:     p.Offset(),
		Page:       p.Number,
		TotalCount: count,
		TotalPage:  TotalPages(count, p.Size),
	}, nil
}
