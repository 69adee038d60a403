package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/format"
	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/moderation"
	"github.com/edvin/shopadmin/internal/shopctl"
)

var couponView = shopctl.View[model.Coupon]{
	Resource: "coupons",
	Columns: []shopctl.Column[model.Coupon]{
		{Title: "ID", Value: func(c model.Coupon) string { return c.ID }},
		{Title: "CODE", Value: func(c model.Coupon) string { return c.Code }},
		{Title: "DISCOUNT", Value: func(c model.Coupon) string { return format.Discount(c.Type, c.Value, "USD") }},
		{Title: "MIN ORDER", Value: func(c model.Coupon) string { return money(c.MinOrderAmountCents) }},
		{Title: "USES", Value: func(c model.Coupon) string {
			if c.MaxUses == 0 {
				return strconv.Itoa(c.UsedCount)
			}
			return fmt.Sprintf("%d/%d", c.UsedCount, c.MaxUses)
		}},
		{Title: "ACTIVE", Value: func(c model.Coupon) string { return strconv.FormatBool(c.Active) }},
	},
}

var bannerView = shopctl.View[model.Banner]{
	Resource: "banners",
	Columns: []shopctl.Column[model.Banner]{
		{Title: "POS", Value: func(b model.Banner) string { return strconv.Itoa(b.Position) }},
		{Title: "TITLE", Value: func(b model.Banner) string { return b.Title }},
		{Title: "LINK", Value: func(b model.Banner) string { return b.LinkURL }},
		{Title: "ACTIVE", Value: func(b model.Banner) string { return strconv.FormatBool(b.Active) }},
	},
}

var reviewView = shopctl.View[model.Review]{
	Resource: "reviews",
	Columns: []shopctl.Column[model.Review]{
		{Title: "ID", Value: func(r model.Review) string { return r.ID }},
		{Title: "RATING", Value: func(r model.Review) string { return strings.Repeat("*", r.Rating) }},
		{Title: "STATUS", Value: func(r model.Review) string { return r.Status }},
		{Title: "FLAGS", Value: func(r model.Review) string { return strings.Join(r.FlagReasons, ",") }},
		{Title: "COMMENT", Value: func(r model.Review) string { return truncate(r.Comment, 60) }},
	},
}

var (
	couponType       string
	couponActiveOnly bool
	couponDef        shopctl.CouponDef

	reviewFlagged   string
	reviewProduct   string
	reviewMinRating int
	keywordsFile    string
)

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "Browse and manage coupons",
}

var couponsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List coupons",
	Long: `List coupons. The full set is fetched once, then filtered by code, type
and active flag, sorted newest first and paginated locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		all, err := shopctl.FetchAll[model.Coupon](cmd.Context(), c, "/user/coupons", nil)
		if err != nil {
			return couponView.Fail(err)
		}

		needle := strings.ToUpper(search)
		p := listing.Apply(all, listing.Query[model.Coupon]{
			Filter: func(cp model.Coupon) bool {
				if couponType != "" && cp.Type != couponType {
					return false
				}
				if couponActiveOnly && !cp.Active {
					return false
				}
				return strings.Contains(cp.Code, needle)
			},
			Less: listing.Reverse(func(a, b model.Coupon) bool {
				return a.CreatedAt.Before(b.CreatedAt)
			}),
			Page:     page,
			PageSize: pageSize,
		})
		return couponView.Render(cmd.OutOrStdout(), p)
	},
}

var couponsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a coupon",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := shopctl.CouponBody(couponDef)
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		var cp model.Coupon
		if err := c.Post(cmd.Context(), "/user/coupons", body, &cp); err != nil {
			return fmt.Errorf("create coupon: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Coupon %s created (%s off)\n", cp.Code, format.Discount(cp.Type, cp.Value, "USD"))
		return nil
	},
}

var couponsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a coupon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.Delete(cmd.Context(), "/user/coupons/"+args[0]); err != nil {
			return fmt.Errorf("delete coupon: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Coupon %s deleted\n", args[0])
		return nil
	},
}

var bannersCmd = &cobra.Command{
	Use:   "banners",
	Short: "Browse banners",
}

var bannersGroupedCmd = &cobra.Command{
	Use:   "grouped",
	Short: "List banners grouped by campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		all, err := shopctl.FetchAll[model.Banner](cmd.Context(), c, "/banners", url.Values{"sort": {"position"}, "order": {"asc"}})
		if err != nil {
			return bannerView.Fail(err)
		}

		groups := listing.GroupBy(all, func(b model.Banner) string {
			if b.Campaign == "" {
				return "(no campaign)"
			}
			return b.Campaign
		})
		return bannerView.RenderGroups(cmd.OutOrStdout(), groups)
	},
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Moderate product reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := listQuery()
		setIf(q, "flagged", reviewFlagged)
		setIf(q, "product_id", reviewProduct)
		if reviewMinRating > 0 {
			q.Set("min_rating", strconv.Itoa(reviewMinRating))
		}
		return listPage(cmd, reviewView, "/reviews", q)
	},
}

func reviewStatusCmd(use, short, newStatus string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var rv model.Review
			body := map[string]string{"status": newStatus}
			if err := c.Patch(cmd.Context(), "/reviews/"+args[0], body, &rv); err != nil {
				return fmt.Errorf("%s review: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review %s %s\n", rv.ID, rv.Status)
			return nil
		},
	}
}

var reviewsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Re-check every review against the server's keyword list",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var res struct {
			Scanned int `json:"scanned"`
			Flagged int `json:"flagged"`
			Changed int `json:"changed"`
		}
		if err := c.Post(cmd.Context(), "/reviews/scan", nil, &res); err != nil {
			return fmt.Errorf("scan reviews: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d reviews: %d flagged, %d changed\n", res.Scanned, res.Flagged, res.Changed)
		return nil
	},
}

var reviewsFlagCheckCmd = &cobra.Command{
	Use:   "flag-check",
	Short: "Preview which reviews a keyword list would flag",
	Long: `Fetch every review and check its comment against a keyword list locally,
without changing anything on the server. Use --keywords to try a YAML file
with a top-level "keywords" list; the built-in list is used otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagger, err := moderation.Load(keywordsFile)
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		all, err := shopctl.FetchAll[model.Review](cmd.Context(), c, "/reviews", nil)
		if err != nil {
			return reviewView.Fail(err)
		}

		var matched []model.Review
		for _, rv := range all {
			if reasons := flagger.Check(rv.Comment); len(reasons) > 0 {
				rv.FlagReasons = reasons
				matched = append(matched, rv)
			}
		}
		p := listing.Paginate(matched, page, pageSize)
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d reviews match\n", len(matched), len(all))
		return reviewView.Render(cmd.OutOrStdout(), p)
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	addListFlags(couponsListCmd)
	couponsListCmd.Flags().StringVar(&couponType, "type", "", "Filter by type (percentage or fixed)")
	couponsListCmd.Flags().BoolVar(&couponActiveOnly, "active", false, "Only active coupons")

	f := couponsCreateCmd.Flags()
	f.StringVar(&couponDef.Code, "code", "", "Coupon code (letters and digits)")
	f.StringVar(&couponDef.Type, "type", model.CouponPercentage, "percentage or fixed")
	f.Int64Var(&couponDef.Value, "value", 0, "Percent off, or cents off for fixed coupons")
	f.Int64Var(&couponDef.MinOrderAmountCents, "min-order", 0, "Minimum order amount in cents")
	f.IntVar(&couponDef.MaxUses, "max-uses", 0, "Maximum redemptions, 0 for unlimited")
	f.StringVar(&couponDef.StartsAt, "starts", "", "Start date (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&couponDef.EndsAt, "ends", "", "End date (YYYY-MM-DD or RFC 3339)")
	f.BoolVar(&couponDef.Inactive, "inactive", false, "Create the coupon disabled")
	_ = couponsCreateCmd.MarkFlagRequired("code")
	_ = couponsCreateCmd.MarkFlagRequired("value")

	addListFlags(reviewsListCmd)
	reviewsListCmd.Flags().StringVar(&reviewFlagged, "flagged", "", "Only flagged (true) or unflagged (false) reviews")
	reviewsListCmd.Flags().StringVar(&reviewProduct, "product", "", "Filter by product ID")
	reviewsListCmd.Flags().IntVar(&reviewMinRating, "min-rating", 0, "Minimum rating")

	reviewsFlagCheckCmd.Flags().StringVar(&keywordsFile, "keywords", "", "YAML keyword file")
	reviewsFlagCheckCmd.Flags().IntVar(&page, "page", 1, "Page number")
	reviewsFlagCheckCmd.Flags().IntVar(&pageSize, "page-size", listing.DefaultPageSize, "Items per page (max 100)")

	couponsCmd.AddCommand(couponsListCmd, couponsCreateCmd, couponsDeleteCmd)
	bannersCmd.AddCommand(bannersGroupedCmd)
	reviewsCmd.AddCommand(
		reviewsListCmd,
		reviewStatusCmd("approve", "Approve a review", model.ReviewApproved),
		reviewStatusCmd("reject", "Reject a review", model.ReviewRejected),
		reviewsScanCmd,
		reviewsFlagCheckCmd,
	)

	rootCmd.AddCommand(couponsCmd, bannersCmd, reviewsCmd)
}
