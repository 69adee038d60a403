package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/shopctl"
)

type dashboardStats struct {
	Products         int   `json:"products"`
	ActiveProducts   int   `json:"active_products"`
	LowStockProducts int   `json:"low_stock_products"`
	Categories       int   `json:"categories"`
	Customers        int   `json:"customers"`
	Orders           int   `json:"orders"`
	PendingOrders    int   `json:"pending_orders"`
	RevenueCents     int64 `json:"revenue_cents"`
	FlaggedReviews   int   `json:"flagged_reviews"`
	OrdersByStatus   []struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	} `json:"orders_by_status"`
}

type dailyPoint struct {
	Date         string `json:"date"`
	Orders       int    `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`

	bar string
}

type productSales struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenue_cents"`
}

type analytics struct {
	Days              int            `json:"days"`
	From              string         `json:"from"`
	To                string         `json:"to"`
	Daily             []dailyPoint   `json:"daily"`
	TopProducts       []productSales `json:"top_products"`
	TotalOrders       int            `json:"total_orders"`
	TotalRevenueCents int64          `json:"total_revenue_cents"`
}

var dailyView = shopctl.View[dailyPoint]{
	Resource: "orders in this period",
	Columns: []shopctl.Column[dailyPoint]{
		{Title: "DATE", Value: func(d dailyPoint) string { return d.Date }},
		{Title: "ORDERS", Value: func(d dailyPoint) string { return strconv.Itoa(d.Orders) }},
		{Title: "REVENUE", Value: func(d dailyPoint) string { return money(d.RevenueCents) }},
		{Title: "", Value: func(d dailyPoint) string { return d.bar }},
	},
}

var topProductView = shopctl.View[productSales]{
	Resource: "product sales",
	Columns: []shopctl.Column[productSales]{
		{Title: "PRODUCT", Value: func(p productSales) string { return p.Name }},
		{Title: "QTY", Value: func(p productSales) string { return strconv.Itoa(p.Quantity) }},
		{Title: "REVENUE", Value: func(p productSales) string { return money(p.RevenueCents) }},
	},
}

var analyticsDays int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Shop-wide figures",
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline counts and revenue",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var s dashboardStats
		if err := c.Get(cmd.Context(), "/dashboard/stats", nil, &s); err != nil {
			return shopctl.FetchError("dashboard stats", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Products:        %d (%d active, %d low stock)\n", s.Products, s.ActiveProducts, s.LowStockProducts)
		fmt.Fprintf(out, "Categories:      %d\n", s.Categories)
		fmt.Fprintf(out, "Customers:       %d\n", s.Customers)
		fmt.Fprintf(out, "Orders:          %d (%d pending)\n", s.Orders, s.PendingOrders)
		fmt.Fprintf(out, "Revenue:         %s\n", money(s.RevenueCents))
		fmt.Fprintf(out, "Flagged reviews: %d\n", s.FlaggedReviews)
		for _, sc := range s.OrdersByStatus {
			fmt.Fprintf(out, "  %-10s %d\n", sc.Status, sc.Count)
		}
		return nil
	},
}

var dashboardAnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show daily orders and revenue with the best-selling products",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var a analytics
		q := url.Values{"days": {strconv.Itoa(analyticsDays)}}
		if err := c.Get(cmd.Context(), "/dashboard/analytics", q, &a); err != nil {
			return shopctl.FetchError("analytics", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s to %s: %d orders, %s\n", a.From, a.To, a.TotalOrders, money(a.TotalRevenueCents))
		withBars(a.Daily, 30)
		if err := dailyView.Render(out, listing.Paginate(a.Daily, page, pageSize)); err != nil {
			return err
		}
		return topProductView.Render(out, listing.Paginate(a.TopProducts, 1, 10))
	},
}

// withBars sets a revenue bar on each point, scaled to the busiest day.
func withBars(points []dailyPoint, width int) {
	var peak int64
	for _, p := range points {
		peak = max(peak, p.RevenueCents)
	}
	for i := range points {
		n := 0
		if peak > 0 {
			n = int(points[i].RevenueCents * int64(width) / peak)
		}
		points[i].bar = strings.Repeat("█", n)
	}
}

func init() {
	dashboardAnalyticsCmd.Flags().IntVar(&analyticsDays, "days", 30, "Window length in days (1-365)")
	dashboardAnalyticsCmd.Flags().IntVar(&page, "page", 1, "Page of the daily table")
	dashboardAnalyticsCmd.Flags().IntVar(&pageSize, "page-size", 31, "Days per page (max 100)")

	dashboardCmd.AddCommand(dashboardStatsCmd, dashboardAnalyticsCmd)
	rootCmd.AddCommand(dashboardCmd)
}
