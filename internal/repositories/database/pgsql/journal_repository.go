package pgsql

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_books_app/internal/models"
	"github.com/SscSPs/ledger_books_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_books_app/internal/utils/mapping"
	"github.com/SscSPs/ledger_books_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const journalEntrySelectQuery = `
SELECT
	je.journal_entry_id, je.company_id, je.entry_number, je.entry_date, je.description,
	je.reference, je.total_amount, je.status, je.reversal_of_id,
	je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
FROM journal_entries je
`

const journalLineSelectQuery = `
SELECT
	l.line_id, l.journal_entry_id, l.account_id, COALESCE(l.description, '') AS description,
	l.debit_amount, l.credit_amount, l.line_order, l.created_at
FROM journal_entry_lines l
`

func collectEntries(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := q.Query(ctx, journalEntrySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect journal entry rows", err)
	}
	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nil
}

func collectLines(ctx context.Context, q querier, journalEntryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	result := make(map[string][]domain.JournalEntryLine, len(journalEntryIDs))
	if len(journalEntryIDs) == 0 {
		return result, nil
	}
	rows, err := q.Query(ctx,
		journalLineSelectQuery+`WHERE l.journal_entry_id = ANY($1::uuid[]) ORDER BY l.journal_entry_id, l.line_order`,
		journalEntryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect journal entry line rows", err)
	}
	for _, m := range modelLines {
		result[m.JournalEntryID] = append(result[m.JournalEntryID], mapping.ToDomainJournalEntryLine(m))
	}
	return result, nil
}

// FindJournalEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entries, err := collectEntries(ctx, r.Pool, `WHERE je.journal_entry_id = $1`, journalEntryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// FindLinesByJournalEntryIDs retrieves the lines of several entries grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByJournalEntryIDs(ctx context.Context, journalEntryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	return collectLines(ctx, r.Pool, journalEntryIDs)
}

// ListJournalEntriesByCompany retrieves a page of entry headers using keyset pagination.
// It fetches one extra row to decide whether a next page exists.
func (r *PgxJournalRepository) ListJournalEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	filterClause := `WHERE je.company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "invalid pagination token")
		}
		// Row comparison keeps the cursor stable across equal dates and timestamps.
		filterClause += ` AND (je.entry_date, je.created_at, je.journal_entry_id) < ($2, $3, $4::uuid)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}

	query := filterClause +
		` ORDER BY je.entry_date DESC, je.created_at DESC, je.journal_entry_id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	entries, err := collectEntries(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// WithTx runs fn inside a single database transaction.
func (r *PgxJournalRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.JournalTxRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxJournalTx{tx: tx})
	})
}

// SyncEntrySequence moves the counter up to the largest stored sequence for the year.
// It never lowers the counter.
func (r *PgxJournalRepository) SyncEntrySequence(ctx context.Context, companyID string, year int) error {
	prefix := accounting.EntryNumberYearPrefix(year)
	query := `
		INSERT INTO journal_entry_sequences (company_id, year, last_seq)
		SELECT $1, $2, COALESCE(MAX(CAST(SUBSTRING(entry_number FROM char_length($3) + 1) AS INTEGER)), 0)
		FROM journal_entries
		WHERE company_id = $1
		  AND starts_with(entry_number, $3)
		  AND SUBSTRING(entry_number FROM char_length($3) + 1) ~ '^[0-9]+$'
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_seq = GREATEST(journal_entry_sequences.last_seq, EXCLUDED.last_seq);
	`
	if _, err := r.Pool.Exec(ctx, query, companyID, year, prefix); err != nil {
		return apperrors.NewAppError(500, "failed to synchronise entry sequence", err)
	}
	return nil
}

// pgxJournalTx implements the writes of one posting transaction.
type pgxJournalTx struct {
	tx pgx.Tx
}

var _ portsrepo.JournalTxRepository = (*pgxJournalTx)(nil)

// NextEntrySequence increments the per-company, per-year counter.
// The upsert keeps the counter row locked until the transaction ends.
func (t *pgxJournalTx) NextEntrySequence(ctx context.Context, companyID string, year int) (int, error) {
	query := `
		INSERT INTO journal_entry_sequences (company_id, year, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_seq = journal_entry_sequences.last_seq + 1
		RETURNING last_seq;
	`
	var seq int
	if err := t.tx.QueryRow(ctx, query, companyID, year).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate entry sequence", err)
	}
	return seq, nil
}

// InsertJournalEntry inserts the entry header.
func (t *pgxJournalTx) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (
			journal_entry_id, company_id, entry_number, entry_date, description, reference,
			total_amount, status, reversal_of_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := t.tx.Exec(ctx, query,
		m.JournalEntryID, m.CompanyID, m.EntryNumber, m.EntryDate, m.Description, m.Reference,
		m.TotalAmount, m.Status, m.ReversalOfID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrConflict, m.EntryNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
	}
	return nil
}

// InsertJournalEntryLines inserts all lines of an entry in one batch.
func (t *pgxJournalTx) InsertJournalEntryLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entry_lines (
			line_id, journal_entry_id, account_id, description, debit_amount, credit_amount, line_order, created_at
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(query, m.LineID, m.JournalEntryID, m.AccountID, m.Description,
			m.DebitAmount, m.CreditAmount, m.LineOrder, m.CreatedAt)
	}

	// Close reports the first failing command of the batch.
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return fmt.Errorf("%w: line references an unknown account", apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry lines", err)
	}
	return nil
}

// ApplyBalanceChanges adds each delta to the stored balance, in sorted account order.
func (t *pgxJournalTx) ApplyBalanceChanges(ctx context.Context, companyID string, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	accountIDs := make([]string, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	query := `
		UPDATE accounts
		SET balance = ROUND(balance + $1, 2), last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND company_id = $5;
	`
	batch := &pgx.Batch{}
	for _, id := range accountIDs {
		batch.Queue(query, changes[id], now, userID, id, companyID)
	}

	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, id := range accountIDs {
		tag, err := br.Exec()
		if err != nil {
			return apperrors.NewAppError(500, "failed to update balance for account "+id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return br.Close()
}

// FindJournalEntryForUpdate locks an entry row and returns it with its lines.
func (t *pgxJournalTx) FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entries, err := collectEntries(ctx, t.tx, `WHERE je.journal_entry_id = $1 FOR UPDATE`, journalEntryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	entry := entries[0]

	lines, err := collectLines(ctx, t.tx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[journalEntryID]
	return &entry, nil
}

// UpdateJournalEntryStatus sets an entry's status.
func (t *pgxJournalTx) UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.JournalEntryStatus, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE journal_entry_id = $4;
	`
	tag, err := t.tx.Exec(ctx, query, string(status), now, userID, journalEntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
