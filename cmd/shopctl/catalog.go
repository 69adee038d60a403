package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/listing"
	"github.com/edvin/shopadmin/internal/model"
	"github.com/edvin/shopadmin/internal/shopctl"
)

var productView = shopctl.View[model.Product]{
	Resource: "products",
	Columns: []shopctl.Column[model.Product]{
		{Title: "ID", Value: func(p model.Product) string { return p.ID }},
		{Title: "SKU", Value: func(p model.Product) string { return p.SKU }},
		{Title: "NAME", Value: func(p model.Product) string { return p.Name }},
		{Title: "PRICE", Value: func(p model.Product) string { return money(p.PriceCents) }},
		{Title: "STOCK", Value: func(p model.Product) string { return strconv.Itoa(p.Stock) }},
		{Title: "STATUS", Value: func(p model.Product) string { return p.Status }},
	},
}

var variantView = shopctl.View[model.Variant]{
	Resource: "variants",
	Columns: []shopctl.Column[model.Variant]{
		{Title: "SKU", Value: func(v model.Variant) string { return v.SKU }},
		{Title: "SIZE", Value: func(v model.Variant) string { return v.Size }},
		{Title: "PRICE", Value: func(v model.Variant) string {
			if v.PriceCents == nil {
				return "-"
			}
			return money(*v.PriceCents)
		}},
		{Title: "STOCK", Value: func(v model.Variant) string { return strconv.Itoa(v.Stock) }},
	},
}

var categoryView = shopctl.View[model.Category]{
	Resource: "categories",
	Columns: []shopctl.Column[model.Category]{
		{Title: "ID", Value: func(c model.Category) string { return c.ID }},
		{Title: "NAME", Value: func(c model.Category) string { return c.Name }},
		{Title: "SLUG", Value: func(c model.Category) string { return c.Slug }},
		{Title: "PARENT", Value: func(c model.Category) string { return optional(c.ParentID) }},
		{Title: "ORDER", Value: func(c model.Category) string { return strconv.Itoa(c.SortOrder) }},
		{Title: "ACTIVE", Value: func(c model.Category) string { return strconv.FormatBool(c.Active) }},
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPage(cmd, productView, "/products", listQuery())
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a product with its variants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var p model.Product
		if err := c.Get(cmd.Context(), "/products/"+args[0], nil, &p); err != nil {
			return shopctl.FetchError("product", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
		fmt.Fprintf(out, "  SKU:      %s\n", p.SKU)
		fmt.Fprintf(out, "  Slug:     %s\n", p.Slug)
		fmt.Fprintf(out, "  Price:    %s\n", money(p.PriceCents))
		fmt.Fprintf(out, "  Stock:    %d\n", p.Stock)
		fmt.Fprintf(out, "  Status:   %s\n", p.Status)
		fmt.Fprintf(out, "  Category: %s\n", optional(p.CategoryID))
		fmt.Fprintf(out, "  Updated:  %s\n", date(p.UpdatedAt))
		return variantView.Render(out, listing.Paginate(p.Variants, 1, listing.MaxPageSize))
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.Delete(cmd.Context(), "/products/"+args[0]); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Product %s deleted\n", args[0])
		return nil
	},
}

var exportOutput string

var productsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the product catalog as an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		n, err := c.Download(cmd.Context(), "/products/export", w)
		if err != nil {
			return fmt.Errorf("export products: %w", err)
		}
		if exportOutput != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", n, exportOutput)
		}
		return nil
	},
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Browse product variants",
}

var variantsGroupedCmd = &cobra.Command{
	Use:   "grouped",
	Short: "List variants grouped under their product",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var groups []model.VariantGroup
		if err := c.Get(cmd.Context(), "/variants/grouped", nil, &groups); err != nil {
			return variantView.Fail(err)
		}

		out := make([]listing.Group[string, model.Variant], len(groups))
		for i, g := range groups {
			out[i] = listing.Group[string, model.Variant]{Key: g.ProductName, Items: g.Variants}
		}
		return variantView.RenderGroups(cmd.OutOrStdout(), out)
	},
}

var categoriesActiveOnly bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse and manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Long: `List categories. The full set is fetched once, then filtered, sorted by
sort order and paginated locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		all, err := shopctl.FetchAll[model.Category](cmd.Context(), c, "/categories", nil)
		if err != nil {
			return categoryView.Fail(err)
		}

		needle := strings.ToLower(search)
		p := listing.Apply(all, listing.Query[model.Category]{
			Filter: func(cat model.Category) bool {
				if categoriesActiveOnly && !cat.Active {
					return false
				}
				return needle == "" || strings.Contains(strings.ToLower(cat.Name), needle)
			},
			Less: func(a, b model.Category) bool {
				if a.SortOrder != b.SortOrder {
					return a.SortOrder < b.SortOrder
				}
				return a.Name < b.Name
			},
			Page:     page,
			PageSize: pageSize,
		})
		return categoryView.Render(cmd.OutOrStdout(), p)
	},
}

var categoriesTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show categories nested under their parents",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var roots []model.Category
		if err := c.Get(cmd.Context(), "/categories/tree", nil, &roots); err != nil {
			return categoryView.Fail(err)
		}
		if len(roots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no categories found")
			return nil
		}
		printTree(cmd.OutOrStdout(), roots, 0)
		return nil
	},
}

func printTree(w io.Writer, nodes []model.Category, depth int) {
	for _, n := range nodes {
		suffix := ""
		if !n.Active {
			suffix = " (inactive)"
		}
		fmt.Fprintf(w, "%s%s [%s]%s\n", strings.Repeat("  ", depth), n.Name, n.Slug, suffix)
		printTree(w, n.Children, depth+1)
	}
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category without products or children",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.Delete(cmd.Context(), "/categories/"+args[0]); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Category %s deleted\n", args[0])
		return nil
	},
}

func init() {
	addListFlags(productsListCmd)
	addListFlags(categoriesListCmd)
	categoriesListCmd.Flags().BoolVar(&categoriesActiveOnly, "active", false, "Only active categories")
	productsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "products.xlsx", "Output file, - for stdout")

	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsDeleteCmd, productsExportCmd)
	variantsCmd.AddCommand(variantsGroupedCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesTreeCmd, categoriesDeleteCmd)

	rootCmd.AddCommand(productsCmd, variantsCmd, categoriesCmd)
}
