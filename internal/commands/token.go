package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/platform/config"
	"github.com/SscSPs/ledger_books_app/internal/utils/authtoken"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var userID string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.IsProduction {
				return errors.New("refusing to issue development tokens with IS_PRODUCTION set")
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}

			token, err := authtoken.Issue(userID, cfg.JWTSecret, cfg.JWTIssuer, ttl, time.Now())
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID placed in the token subject (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")

	return cmd
}
