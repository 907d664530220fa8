package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry header.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntriesByCompany returns entry headers ordered by date descending, then creation
	// time descending, plus a token for the next page when more rows exist.
	ListJournalEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindLinesByJournalEntryIDs retrieves lines for several entries, grouped by entry ID, in line order.
	FindLinesByJournalEntryIDs(ctx context.Context, journalEntryIDs []string) (map[string][]domain.JournalEntryLine, error)
}

// JournalTxRepository is the set of writes available inside one posting transaction.
type JournalTxRepository interface {
	// NextEntrySequence atomically increments and returns the company's counter for the year.
	// The counter row stays locked until the transaction ends.
	NextEntrySequence(ctx context.Context, companyID string, year int) (int, error)

	// InsertJournalEntry writes the entry header. A duplicate entry number yields ErrConflict.
	InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// InsertJournalEntryLines writes all lines of an entry.
	InsertJournalEntryLines(ctx context.Context, lines []domain.JournalEntryLine) error

	// ApplyBalanceChanges adds each delta to the stored balance server-side.
	// Any account missing from the company yields ErrNotFound.
	ApplyBalanceChanges(ctx context.Context, companyID string, changes map[string]decimal.Decimal, userID string, now time.Time) error

	// FindJournalEntryForUpdate locks and returns an entry with its lines.
	FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// UpdateJournalEntryStatus changes an entry's status.
	UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.JournalEntryStatus, userID string, now time.Time) error
}

// JournalWriter runs posting work atomically.
type JournalWriter interface {
	// WithTx runs fn inside one database transaction; any error from fn rolls everything back.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx JournalTxRepository) error) error

	// SyncEntrySequence raises the company's counter for the year to the highest
	// entry number already stored, so the next allocation does not collide.
	SyncEntrySequence(ctx context.Context, companyID string, year int) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
