package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edvin/shopadmin/internal/shopctl"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the token",
	Long: `Sign in with an admin account. The token is saved to
~/.config/shopctl/state.json and sent with every later request.

The password may also be given through SHOPCTL_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("SHOPCTL_PASSWORD")
		}
		if loginEmail == "" || password == "" {
			return errors.New("--email and --password (or SHOPCTL_PASSWORD) are required")
		}

		c, err := newClient()
		if err != nil {
			return err
		}
		res, err := c.Login(cmd.Context(), loginEmail, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		state := &shopctl.State{BaseURL: c.BaseURL, Token: res.Token, Email: res.Admin.Email}
		if err := shopctl.SaveState(state); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.Admin.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := shopctl.ClearState(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password")

	rootCmd.AddCommand(loginCmd, logoutCmd)
}
