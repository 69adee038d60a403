package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DashboardStats holds aggregate counts for the dashboard landing page.
type DashboardStats struct {
	Products         int           `json:"products"`
	ActiveProducts   int           `json:"active_products"`
	LowStockProducts int           `json:"low_stock_products"`
	Categories       int           `json:"categories"`
	Customers        int           `json:"customers"`
	Orders           int           `json:"orders"`
	PendingOrders    int           `json:"pending_orders"`
	RevenueCents     int64         `json:"revenue_cents"`
	FlaggedReviews   int           `json:"flagged_reviews"`
	OrdersByStatus   []StatusCount `json:"orders_by_status"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

// StatusCount holds a count grouped by status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DailyPoint is one day of the revenue series.
type DailyPoint struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenue_cents"`
}

type CategoryRevenue struct {
	Category     string `json:"category"`
	RevenueCents int64  `json:"revenue_cents"`
}

// Analytics holds the chart series for a trailing window of days.
type Analytics struct {
	Days              int               `json:"days"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	Daily             []DailyPoint      `json:"daily"`
	TopProducts       []ProductSales    `json:"top_products"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	TotalOrders       int               `json:"total_orders"`
	TotalRevenueCents int64             `json:"total_revenue_cents"`
}

// Analytics window bounds.
const (
	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 365
	topProductsLimit     = 10
)

// StatsCache stores computed dashboard values for a short time.
type StatsCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

const statsCacheKey = "dashboard:stats"

// DashboardService computes dashboard aggregates.
type DashboardService struct {
	db                DB
	cache             StatsCache
	cacheTTL          time.Duration
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardService creates a DashboardService. cache may be nil.
func NewDashboardService(db DB, cache StatsCache, cacheTTL time.Duration, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		db:                db,
		cache:             cache,
		cacheTTL:          cacheTTL,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// Stats returns dashboard counts, served from the cache when possible.
// Cache failures fall through to the database.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		if ok, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	stats := &DashboardStats{GeneratedAt: s.now().UTC()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.QueryRow(gctx, `
			SELECT
				(SELECT count(*) FROM products),
				(SELECT count(*) FROM products WHERE status = 'active'),
				(SELECT count(*) FROM products WHERE stock < $1),
				(SELECT count(*) FROM categories),
				(SELECT count(*) FROM customers),
				(SELECT count(*) FROM orders),
				(SELECT count(*) FROM orders WHERE status = 'pending'),
				(SELECT COALESCE(sum(amount_cents), 0)::bigint FROM payments WHERE status = 'succeeded'),
				(SELECT count(*) FROM reviews WHERE flagged)`,
			s.lowStockThreshold,
		).Scan(
			&stats.Products,
			&stats.ActiveProducts,
			&stats.LowStockProducts,
			&stats.Categories,
			&stats.Customers,
			&stats.Orders,
			&stats.PendingOrders,
			&stats.RevenueCents,
			&stats.FlaggedReviews,
		)
		if err != nil {
			return fmt.Errorf("dashboard counts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.db.Query(gctx, `SELECT status, count(*) FROM orders GROUP BY status ORDER BY status`)
		if err != nil {
			return fmt.Errorf("orders by status: %w", err)
		}
		defer rows.Close()

		byStatus := []StatusCount{}
		for rows.Next() {
			var sc StatusCount
			if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
				return fmt.Errorf("scan orders by status: %w", err)
			}
			byStatus = append(byStatus, sc)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate orders by status: %w", err)
		}
		stats.OrdersByStatus = byStatus
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, statsCacheKey, stats, s.cacheTTL)
	}
	return stats, nil
}

// ClampAnalyticsDays applies the default and maximum window size.
func ClampAnalyticsDays(days int) int {
	if days <= 0 {
		return DefaultAnalyticsDays
	}
	return min(days, MaxAnalyticsDays)
}

// Analytics aggregates order data over the trailing days (today included).
// Cancelled and refunded orders are excluded.
func (s *DashboardService) Analytics(ctx context.Context, days int) (*Analytics, error) {
	days = ClampAnalyticsDays(days)
	today := s.now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	var (
		daily      []DailyPoint
		top        []ProductSales
		byCategory []CategoryRevenue
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.db.Query(gctx,
			`SELECT to_char(date_trunc('day', created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day,
			 count(*), COALESCE(sum(total_cents), 0)::bigint
			 FROM orders WHERE created_at >= $1 AND status NOT IN ('cancelled', 'refunded')
			 GROUP BY day ORDER BY day`, start)
		if err != nil {
			return fmt.Errorf("daily revenue: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var p DailyPoint
			if err := rows.Scan(&p.Date, &p.Orders, &p.RevenueCents); err != nil {
				return fmt.Errorf("scan daily revenue: %w", err)
			}
			daily = append(daily, p)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.db.Query(gctx,
			`SELECT oi.product_id, max(oi.name), sum(oi.quantity), sum(oi.quantity * oi.unit_price_cents)::bigint
			 FROM order_items oi JOIN orders o ON o.id = oi.order_id
			 WHERE o.created_at >= $1 AND o.status NOT IN ('cancelled', 'refunded')
			 GROUP BY oi.product_id ORDER BY 3 DESC, 2 LIMIT $2`, start, topProductsLimit)
		if err != nil {
			return fmt.Errorf("top products: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var p ProductSales
			if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.RevenueCents); err != nil {
				return fmt.Errorf("scan top products: %w", err)
			}
			top = append(top, p)
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.db.Query(gctx,
			`SELECT COALESCE(c.name, 'Uncategorized'), sum(oi.quantity * oi.unit_price_cents)::bigint
			 FROM order_items oi
			 JOIN orders o ON o.id = oi.order_id
			 LEFT JOIN products p ON p.id = oi.product_id
			 LEFT JOIN categories c ON c.id = p.category_id
			 WHERE o.created_at >= $1 AND o.status NOT IN ('cancelled', 'refunded')
			 GROUP BY 1 ORDER BY 2 DESC, 1`, start)
		if err != nil {
			return fmt.Errorf("revenue by category: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var c CategoryRevenue
			if err := rows.Scan(&c.Category, &c.RevenueCents); err != nil {
				return fmt.Errorf("scan revenue by category: %w", err)
			}
			byCategory = append(byCategory, c)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard analytics: %w", err)
	}

	a := &Analytics{
		Days:              days,
		From:              start.Format(time.DateOnly),
		To:                today.Format(time.DateOnly),
		Daily:             FillDays(start, days, daily),
		TopProducts:       nonNil(top),
		RevenueByCategory: nonNil(byCategory),
	}
	for _, p := range a.Daily {
		a.TotalOrders += p.Orders
		a.TotalRevenueCents += p.RevenueCents
	}
	return a, nil
}

// FillDays returns one point per day starting at start, taking values from
// points and zero for days without orders. Points outside the window are
// ignored.
func FillDays(start time.Time, days int, points []DailyPoint) []DailyPoint {
	byDate := make(map[string]DailyPoint, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}
	out := make([]DailyPoint, days)
	for i := range days {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		p, ok := byDate[date]
		if !ok {
			p = DailyPoint{Date: date}
		}
		out[i] = p
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
