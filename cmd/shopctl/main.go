package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/edvin/shopadmin/internal/format"
	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/shopctl"
)

var (
	// Global flags
	baseURL  string
	basePath string
	timeout  time.Duration

	// List flags, shared by every list command
	page     int
	pageSize int
	search   string
	status   string
	sortBy   string
	order    string
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Terminal dashboard for the shop admin API",
	Long: `shopctl browses and manages the shop catalog, orders, payments, coupons,
customers, banners and reviews through the admin API.

The API location comes from SHOPCTL_BASE_URL and SHOPCTL_BASE_PATH, the token
from "shopctl login" or SHOPCTL_TOKEN.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		applyDefaults(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides SHOPCTL_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "API base path (overrides SHOPCTL_BASE_PATH)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyDefaults resets every flag the user did not set to this command's
// default. List commands share flag variables, so after init they hold the
// default of whichever command registered last.
func applyDefaults(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			_ = f.Value.Set(f.DefValue)
		}
	})
}

// newClient builds an API client from the environment, the saved login and
// the global flags.
func newClient() (*shopctl.Client, error) {
	s, err := shopctl.ResolveSettings()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		s.BaseURL = baseURL
	}
	if basePath != "" {
		s.BasePath = basePath
	}
	c := shopctl.NewClient(s.BaseURL, s.BasePath, s.Token)
	c.HTTPClient.Timeout = timeout
	return c, nil
}

// addListFlags registers the pagination and filter flags on a list command.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", listing.DefaultPageSize, "Items per page (max 100)")
	cmd.Flags().StringVar(&search, "search", "", "Search text")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort field")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (asc or desc)")
}

// listQuery turns the list flags into the query string of a paginated endpoint.
func listQuery() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	for k, v := range map[string]string{"search": search, "status": status, "sort": sortBy, "order": order} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// listPage fetches one server-side page and renders it.
func listPage[T any](cmd *cobra.Command, view shopctl.View[T], path string, query url.Values) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	p, err := shopctl.List[T](cmd.Context(), c, path, query)
	if err != nil {
		return view.Fail(err)
	}
	return view.Render(cmd.OutOrStdout(), p)
}

func money(cents int64) string {
	return format.Money("USD", cents)
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
