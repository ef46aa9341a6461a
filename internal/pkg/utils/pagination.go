package utils

import (
	"math"
	"net/http"
	"strconv"
)

// PaginationParams contains pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Pagination is the pagination block returned next to a page of data
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// DefaultPageSize is the default number of items per page
const DefaultPageSize = 10

// MaxPageSize is the maximum number of items per page
const MaxPageSize = 100

// ParsePaginationParams parses the page and limit query parameters.
// Missing or non-numeric values fall back to the defaults; values below one
// are clamped to one.
func ParsePaginationParams(r *http.Request) PaginationParams {
	q := r.URL.Query()
	return NewPaginationParams(
		parseIntQuery(q.Get("page"), 1),
		parseIntQuery(q.Get("limit"), DefaultPageSize),
	)
}

// NewPaginationParams clamps page and limit and derives the offset
func NewPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// Keep (page-1)*limit within int
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewPagination computes the page count for total items
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(total / int64(limit))
		if total%int64(limit) != 0 {
			pages++
		}
	}

	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

func parseIntQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
