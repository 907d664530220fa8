package commands

import (
	"fmt"

	"github.com/SscSPs/ledger_books_app/internal/utils/accounting"
	"github.com/spf13/cobra"
)

func newEntryNumberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entry-number <JEyyyy-nnnn>",
		Short: "Validate an entry number and print its year and sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, seq, err := accounting.ParseEntryNumber(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "year=%d sequence=%d canonical=%s\n", year, seq, accounting.FormatEntryNumber(year, seq))
			return nil
		},
	}
}
