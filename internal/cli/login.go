package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamzaafridi/ocalcli/internal/auth"
	"github.com/hamzaafridi/ocalcli/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the configured calendar provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		switch cfg.Provider {
		case config.ProviderGoogle:
			if err := auth.GoogleLogin(ctx, cfg.GoogleCredentials); err != nil {
				return err
			}
		default:
			if err := auth.GraphLogin(ctx, cfg.ClientID, cfg.Tenant); err != nil {
				return err
			}
		}
		fmt.Println("Signed in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop cached credentials for the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch cfg.Provider {
		case config.ProviderGoogle:
			err = auth.GoogleLogout()
		default:
			err = auth.GraphLogout()
		}
		if err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
