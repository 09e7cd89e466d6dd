package request

import (
	"net/http"
	"strconv"
)

// Pagination holds parsed page-based pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination extracts page and page_size from query parameters.
// Page is 1-based; out-of-range values fall back to the defaults.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1, PageSize: DefaultPageSize}

	if s := r.URL.Query().Get("page"); s != "" {
		if page, err := strconv.Atoi(s); err == nil && page > 0 {
			p.Page = page
		}
	}

	if s := r.URL.Query().Get("page_size"); s != "" {
		if size, err := strconv.Atoi(s); err == nil && size > 0 {
			p.PageSize = size
		}
	}

	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageCount returns ceil(total / page size).
func (p Pagination) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
