package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/shopctl"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a catalog from a YAML file",
	Long: `Create categories, colors, materials, age groups, products with their
variants, and coupons from a YAML file. Entries that already exist are
skipped, so the same file can be applied again after editing.`,
	Example: `  shopctl seed -f seeds/catalog.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFile == "" {
			return errors.New("-f is required")
		}
		cfg, err := shopctl.LoadSeedConfig(seedFile)
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		return shopctl.NewSeeder(c, cmd.OutOrStdout()).Seed(cmd.Context(), cfg)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file")
	rootCmd.AddCommand(seedCmd)
}
