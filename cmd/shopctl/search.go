package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/shopctl"
)

type searchResult struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
	Status string `json:"status"`
}

var searchView = shopctl.View[searchResult]{
	Resource: "matches",
	Columns: []shopctl.Column[searchResult]{
		{Title: "ID", Value: func(r searchResult) string { return r.ID }},
		{Title: "MATCH", Value: func(r searchResult) string { return r.Label }},
		{Title: "DETAIL", Value: func(r searchResult) string { return r.Detail }},
		{Title: "STATUS", Value: func(r searchResult) string { return r.Status }},
	},
}

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find products, variants, categories, customers, orders and coupons",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var res struct {
			Results []searchResult `json:"results"`
		}
		q := url.Values{"q": {strings.Join(args, " ")}, "limit": {strconv.Itoa(searchLimit)}}
		if err := c.Get(cmd.Context(), "/search", q, &res); err != nil {
			return searchView.Fail(err)
		}
		groups := listing.GroupBy(res.Results, func(r searchResult) string { return r.Type })
		return searchView.RenderGroups(cmd.OutOrStdout(), groups)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "Matches per resource type (1-20)")
	rootCmd.AddCommand(searchCmd)
}
