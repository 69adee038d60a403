package request

import (
	"fmt"
	"net/http"
	"time"
)

// ListParams holds pagination, search, filter, and sort parameters.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	Sort     string
	Order    string // "asc" or "desc"
	Filters  map[string]string
	From     *time.Time
	To       *time.Time
}

// ParseListParams extracts list parameters from the query string.
// defaultSort specifies which field to sort by when none is provided;
// filterKeys names the extra query parameters copied into Filters.
func ParseListParams(r *http.Request, defaultSort string, filterKeys ...string) ListParams {
	pg := ParsePagination(r)
	q := r.URL.Query()
	order := stringOr(q.Get("order"), "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	p := ListParams{
		Page:     pg.Page,
		PageSize: pg.PageSize,
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Sort:     stringOr(q.Get("sort"), defaultSort),
		Order:    order,
		Filters:  map[string]string{},
	}
	for _, k := range filterKeys {
		if v := q.Get(k); v != "" {
			p.Filters[k] = v
		}
	}
	return p
}

// Offset returns the number of rows to skip.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Filter returns the value of an extra filter, or "".
func (p ListParams) Filter(key string) string {
	if p.Filters == nil {
		return ""
	}
	return p.Filters[key]
}

// ParseDateRange reads the "from" and "to" query parameters into p. Dates
// may be RFC 3339 timestamps or plain YYYY-MM-DD; a plain "to" date covers
// the whole day.
func (p *ListParams) ParseDateRange(r *http.Request) error {
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
		p.From = &t
	}
	if s := q.Get("to"); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		p.To = &t
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return fmt.Errorf("to date is before from date")
	}
	return nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func stringOr(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
