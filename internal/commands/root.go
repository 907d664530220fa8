package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the ledgerctl command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operator tooling for the ledger books service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newEntryNumberCommand())

	return rootCmd
}
