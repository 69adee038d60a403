package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SearchResult is one match from the quick search box.
type SearchResult struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
	Status string `json:"status"`
}

// SearchService looks a term up across the main resource tables.
type SearchService struct {
	db DB
}

func NewSearchService(db DB) *SearchService {
	return &SearchService{db: db}
}

// Search runs one query per resource type in parallel. Results are grouped by
// type in a fixed order; each type contributes at most limit rows.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	pattern := "%" + query + "%"

	queries := []string{
		`SELECT 'product', id, name, sku, status FROM products
			WHERE name ILIKE $1 OR sku ILIKE $1
			ORDER BY name LIMIT $2`,
		`SELECT 'variant', v.id, v.sku, p.name, p.status
			FROM variants v JOIN products p ON p.id = v.product_id
			WHERE v.sku ILIKE $1
			ORDER BY v.sku LIMIT $2`,
		`SELECT 'category', id, name, slug, CASE WHEN active THEN 'active' ELSE 'inactive' END FROM categories
			WHERE name ILIKE $1 OR slug ILIKE $1
			ORDER BY name LIMIT $2`,
		`SELECT 'customer', id, name, email, status FROM customers
			WHERE name ILIKE $1 OR email ILIKE $1
			ORDER BY name LIMIT $2`,
		`SELECT 'order', id, number, customer_id::text, status FROM orders
			WHERE number ILIKE $1
			ORDER BY created_at DESC LIMIT $2`,
		`SELECT 'coupon', id, code, type, CASE WHEN active THEN 'active' ELSE 'inactive' END FROM coupons
			WHERE code ILIKE $1
			ORDER BY code LIMIT $2`,
	}

	results := make([][]SearchResult, len(queries))
	g, ctx := errgroup.WithContext(ctx)

	for i, q := range queries {
		g.Go(func() error {
			rows, err := s.db.Query(ctx, q, pattern, limit)
			if err != nil {
				return fmt.Errorf("search query %d: %w", i, err)
			}
			defer rows.Close()

			for rows.Next() {
				var r SearchResult
				if err := rows.Scan(&r.Type, &r.ID, &r.Label, &r.Detail, &r.Status); err != nil {
					return fmt.Errorf("scan search result: %w", err)
				}
				results[i] = append(results[i], r)
			}
			return rows.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	all := []SearchResult{}
	for _, batch := range results {
		all = append(all, batch...)
	}
	return all, nil
}
