package accounting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
)

const entryNumberPrefix = "JE"

// FormatEntryNumber renders the human-readable journal entry number, e.g. JE2024-0001.
// Sequences above 9999 are printed with as many digits as they need.
func FormatEntryNumber(year, seq int) string {
	return fmt.Sprintf("%s%04d", EntryNumberYearPrefix(year), seq)
}

// EntryNumberYearPrefix is the part shared by every entry number of a year, e.g. JE2024-.
func EntryNumberYearPrefix(year int) string {
	return fmt.Sprintf("%s%d-", entryNumberPrefix, year)
}

// ParseEntryNumber splits an entry number back into its year and sequence.
// Only the exact form FormatEntryNumber produces is accepted, so each
// (year, sequence) pair has a single spelling.
// Malformed input yields an *apperrors.ValidationError on the entryNumber field.
func ParseEntryNumber(entryNumber string) (year int, seq int, err error) {
	invalid := func(msg string) error {
		return apperrors.NewValidationError("entryNumber", fmt.Sprintf("%q: %s", entryNumber, msg))
	}

	rest, ok := strings.CutPrefix(entryNumber, entryNumberPrefix)
	if !ok {
		return 0, 0, invalid("missing " + entryNumberPrefix + " prefix")
	}
	yearPart, seqPart, ok := strings.Cut(rest, "-")
	if !ok || len(yearPart) != 4 || len(seqPart) < 4 || !allDigits(yearPart) || !allDigits(seqPart) {
		return 0, 0, invalid("expected JE<yyyy>-<nnnn>")
	}
	year, err = strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, invalid("invalid year")
	}
	seq, err = strconv.Atoi(seqPart)
	if err != nil || seq < 1 {
		return 0, 0, invalid("invalid sequence")
	}
	if FormatEntryNumber(year, seq) != entryNumber {
		return 0, 0, invalid("sequence is not zero-padded to four digits")
	}
	return year, seq, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
