package request

import (
	"net/http"
	"strconv"

	"github.com/edvin/shopadmin/internal/listing"
)

// Pagination holds parsed page-number pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ParsePagination extracts page and page_size from query parameters.
// Invalid values fall back to the defaults. page_size is clamped, and page is
// capped at listing.MaxPage so the row offset cannot overflow.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{
		Page:     1,
		PageSize: listing.DefaultPageSize,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			p.PageSize = size
		}
	}

	p.Page = listing.ClampPage(p.Page)
	p.PageSize = listing.ClampPageSize(p.PageSize)
	return p
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
