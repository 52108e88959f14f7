package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventbook/server/internal/config"
	"github.com/eventbook/server/internal/domain/accounts"
	"github.com/eventbook/server/internal/storage/postgres"
)

var (
	accountEmail    string
	accountPassword string
	accountAdmin    bool
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new account",
	Long: `Register a new account that can authenticate against the token endpoint.

Examples:
  eventbook-server account create --email user@example.com --password 'secret-password'
  eventbook-server account create --email admin@example.com --password 'secret-password' --admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		logger := config.NewLogger(cfg.Logging)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		roles := []string{accounts.RoleUser}
		if accountAdmin {
			roles = append(roles, accounts.RoleAdmin)
		}

		service := accounts.NewService(postgres.NewAccountsRepository(pool), logger)
		account, err := service.Create(ctx, accounts.CreateParams{
			Email:    accountEmail,
			Password: accountPassword,
			Roles:    roles,
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created account %s (%s)\n", account.ID, account.Email)
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&accountEmail, "email", "", "account email (required)")
	accountCreateCmd.Flags().StringVar(&accountPassword, "password", "", "account password (required)")
	accountCreateCmd.Flags().BoolVar(&accountAdmin, "admin", false, "grant the ADMIN role")
	_ = accountCreateCmd.MarkFlagRequired("email")
	_ = accountCreateCmd.MarkFlagRequired("password")

	accountCmd.AddCommand(accountCreateCmd)
}
