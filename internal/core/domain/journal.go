package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus indicates the state of a journal entry.
type JournalEntryStatus string

const (
	Draft    JournalEntryStatus = "DRAFT"
	Posted   JournalEntryStatus = "POSTED"
	Reversed JournalEntryStatus = "REVERSED"
)

// JournalEntry is a balanced financial event made of two or more lines.
type JournalEntry struct {
	JournalEntryID string             `json:"journalEntryID"`
	CompanyID      string             `json:"companyID"`
	EntryNumber    string             `json:"entryNumber"` // JE<year>-<seq>
	Date           time.Time          `json:"date"`
	Description    string             `json:"description"`
	Reference      *string            `json:"reference"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	Status         JournalEntryStatus `json:"status"`
	ReversalOfID   *string            `json:"reversalOfID"`
	Lines          []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine posts a debit or a credit to exactly one account.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	LineOrder      int             `json:"lineOrder"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Totals returns the debit and credit sums of the given lines.
func Totals(lines []JournalEntryLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	return debits, credits
}
