package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string          `db:"journal_entry_id"`
	CompanyID      string          `db:"company_id"`
	EntryNumber    string          `db:"entry_number"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	Reference      *string         `db:"reference"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	Status         string          `db:"status"`
	ReversalOfID   *string         `db:"reversal_of_id"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table.
type JournalEntryLine struct {
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Description    string          `db:"description"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	LineOrder      int             `db:"line_order"`
	CreatedAt      time.Time       `db:"created_at"`
}
