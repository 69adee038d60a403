// Package listing implements the in-memory half of a list view: filter, sort,
// group and paginate an already-fetched slice.
package listing

import (
	"math"
	"sort"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage bounds page numbers so (page-1)*pageSize fits in an int32.
	// Anything above it is past the end of any real list anyway.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// PageInfo describes where a page sits inside the full result set.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Page is one slice of a larger list together with its position.
type Page[T any] struct {
	Items []T `json:"items"`
	PageInfo
}

// Query configures Apply. A nil Filter keeps every item and a nil Less keeps
// the input order.
type Query[T any] struct {
	Filter   func(T) bool
	Less     func(a, b T) bool
	Page     int
	PageSize int
}

// NewPageInfo clamps page and pageSize and computes the navigation flags.
// An empty set still has one (empty) page.
func NewPageInfo(total, page, pageSize int) PageInfo {
	pageSize = ClampPageSize(pageSize)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page = ClampPage(page)
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ClampPage keeps page within 1..MaxPage.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// ClampPageSize applies the default and maximum page size.
func ClampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// Offset returns the index of the first item on the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Paginate returns items[(page-1)*pageSize : page*pageSize], bounded by the
// slice length. Pages past the end are empty.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	info := NewPageInfo(len(items), page, pageSize)
	start := info.Offset()
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := start + info.PageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, PageInfo: info}
}

// Apply filters, sorts and paginates items without modifying the input.
func Apply[T any](items []T, q Query[T]) Page[T] {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if q.Filter == nil || q.Filter(it) {
			filtered = append(filtered, it)
		}
	}
	if q.Less != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			return q.Less(filtered[i], filtered[j])
		})
	}
	return Paginate(filtered, q.Page, q.PageSize)
}

// Group is the set of items sharing one key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy groups items by key in a single pass. Groups appear in the order
// their key is first seen and items keep their relative order.
func GroupBy[K comparable, T any](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Reverse wraps a Less function to sort in the opposite direction.
func Reverse[T any](less func(a, b T) bool) func(a, b T) bool {
	return func(a, b T) bool { return less(b, a) }
}
