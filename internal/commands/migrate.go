package commands

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_books_app/internal/platform/config"
	"github.com/SscSPs/ledger_books_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(newMigrateDirectionCommand("up", "Apply all pending migrations", database.MigrateUp))
	cmd.AddCommand(newMigrateDirectionCommand("down", "Roll back all migrations", database.MigrateDown))
	return cmd
}

func newMigrateDirectionCommand(use, short string, direction database.MigrationDirection) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.DatabaseURL == "" {
				return errors.New("PGSQL_URL is not set")
			}
			if path == "" {
				path = cfg.MigrationsPath
			}

			changed, err := database.RunMigrations(cfg.DatabaseURL, path, direction)
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: applied\n", use)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: no change\n", use)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (defaults to MIGRATIONS_PATH)")
	return cmd
}
