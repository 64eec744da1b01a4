package utils

import (
	"math"
	"strconv"
)

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NormalizePageBounds clamps a requested page window to the supported
// range: page starts at 1, limit defaults to 20 and is capped at 100.
func NormalizePageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(total int64, page, limit int) PaginationMeta {
	pages := int(math.Ceil(float64(total) / float64(limit)))

	return PaginationMeta{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// IntToString converts an integer to string
func IntToString(i int) string {
	return strconv.Itoa(i)
}
