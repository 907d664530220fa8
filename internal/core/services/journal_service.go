package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/SscSPs/ledger_books_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_books_app/internal/utils/ids"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPostingMaxRetries is the number of attempts made when an entry number collides.
const DefaultPostingMaxRetries = 3

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	metrics     portssvc.MetricsSvc
	maxRetries  int
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalCompanyAuthorizer sets the company authorizer for the journal service
func WithJournalCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithJournalMetrics lets posting invalidate cached metrics
func WithJournalMetrics(metrics portssvc.MetricsSvc) JournalServiceOption {
	return func(s *journalService) {
		s.metrics = metrics
	}
}

// WithPostingMaxRetries sets how many times a posting is attempted on an entry number conflict
func WithPostingMaxRetries(n int) JournalServiceOption {
	return func(s *journalService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		maxRetries:  DefaultPostingMaxRetries,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates, numbers and posts a balanced entry.
// Numbering, persistence and balance updates happen in a single transaction.
func (s *journalService) CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := canonicalRefs(&companyID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entryDate, lines, err := validateEntryRequest(req)
	if err != nil {
		return nil, err
	}

	debits, credits := domain.Totals(lines)
	if !accounting.IsBalanced(debits, credits) {
		s.LogWarn(ctx, "Unbalanced journal entry rejected",
			slog.String("company_id", companyID),
			slog.String("debits", debits.StringFixed(2)),
			slog.String("credits", credits.StringFixed(2)))
		return nil, fmt.Errorf("%w: debits %s, credits %s",
			apperrors.ErrUnbalanced, debits.StringFixed(2), credits.StringFixed(2))
	}

	accountTypes, err := s.resolveAccounts(ctx, companyID, lines)
	if err != nil {
		return nil, err
	}

	changes, err := accounting.BalanceChanges(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance changes: %w", err)
	}

	now := s.now().UTC()
	entry := domain.JournalEntry{
		CompanyID:   companyID,
		Date:        entryDate,
		Description: strings.TrimSpace(req.Description),
		Reference:   req.Reference,
		TotalAmount: debits,
		Status:      domain.Posted,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	entryYear := func() int { return entryDate.Year() }
	err = s.withRetry(ctx, companyID, entryYear, func() error {
		entry.JournalEntryID = uuid.NewString()
		stamped := stampLines(lines, entry.JournalEntryID, now)

		return s.journalRepo.WithTx(ctx, func(ctx context.Context, tx portsrepo.JournalTxRepository) error {
			seq, err := tx.NextEntrySequence(ctx, companyID, entryDate.Year())
			if err != nil {
				return fmt.Errorf("failed to allocate entry number: %w", err)
			}
			entry.EntryNumber = accounting.FormatEntryNumber(entryDate.Year(), seq)

			if err := tx.InsertJournalEntry(ctx, entry); err != nil {
				return err
			}
			if err := tx.InsertJournalEntryLines(ctx, stamped); err != nil {
				return fmt.Errorf("failed to insert journal entry lines: %w", err)
			}
			if err := tx.ApplyBalanceChanges(ctx, companyID, changes, userID, now); err != nil {
				return err
			}
			return nil
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("company_id", companyID))
		return nil, err
	}

	s.invalidateMetrics(ctx, companyID)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total_amount", entry.TotalAmount.StringFixed(2)))

	entry.Lines = nil
	return &entry, nil
}

// ReverseJournalEntry posts the mirror image of a POSTED entry, numbered in the current year,
// and marks the original REVERSED.
func (s *journalService) ReverseJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	if err := canonicalRefs(&companyID, &journalEntryID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	var reversal domain.JournalEntry
	reversalYear := func() int { return reversal.Date.Year() }
	err := s.withRetry(ctx, companyID, reversalYear, func() error {
		return s.journalRepo.WithTx(ctx, func(ctx context.Context, tx portsrepo.JournalTxRepository) error {
			original, err := tx.FindJournalEntryForUpdate(ctx, journalEntryID)
			if err != nil {
				return err
			}
			if original.CompanyID != companyID {
				return apperrors.ErrNotFound
			}
			if original.Status != domain.Posted {
				return apperrors.NewValidationError("status",
					fmt.Sprintf("only POSTED entries can be reversed, entry is %s", original.Status))
			}

			now := s.now().UTC()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			reversal = domain.JournalEntry{
				JournalEntryID: uuid.NewString(),
				CompanyID:      companyID,
				Date:           today,
				Description:    "Reversal of " + original.EntryNumber,
				Reference:      original.Reference,
				TotalAmount:    original.TotalAmount,
				Status:         domain.Posted,
				ReversalOfID:   &original.JournalEntryID,
				AuditFields:    domain.NewAuditFields(userID, now),
			}

			mirrored := make([]domain.JournalEntryLine, len(original.Lines))
			for i, l := range original.Lines {
				mirrored[i] = domain.JournalEntryLine{
					AccountID:    l.AccountID,
					Description:  l.Description,
					DebitAmount:  l.CreditAmount,
					CreditAmount: l.DebitAmount,
				}
			}
			mirrored = stampLines(mirrored, reversal.JournalEntryID, now)

			accountTypes, err := s.resolveAccounts(ctx, companyID, mirrored)
			if err != nil {
				return err
			}
			changes, err := accounting.BalanceChanges(mirrored, accountTypes)
			if err != nil {
				return fmt.Errorf("failed to compute balance changes: %w", err)
			}

			seq, err := tx.NextEntrySequence(ctx, companyID, today.Year())
			if err != nil {
				return fmt.Errorf("failed to allocate entry number: %w", err)
			}
			reversal.EntryNumber = accounting.FormatEntryNumber(today.Year(), seq)

			if err := tx.InsertJournalEntry(ctx, reversal); err != nil {
				return err
			}
			if err := tx.InsertJournalEntryLines(ctx, mirrored); err != nil {
				return fmt.Errorf("failed to insert journal entry lines: %w", err)
			}
			if err := tx.ApplyBalanceChanges(ctx, companyID, changes, userID, now); err != nil {
				return err
			}
			return tx.UpdateJournalEntryStatus(ctx, original.JournalEntryID, domain.Reversed, userID, now)
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}

	s.invalidateMetrics(ctx, companyID)
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("reversal_id", reversal.JournalEntryID),
		slog.String("entry_number", reversal.EntryNumber))
	return &reversal, nil
}

// GetJournalEntry retrieves one entry of the company with its lines
func (s *journalService) GetJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	if err := canonicalRefs(&companyID, &journalEntryID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	linesByEntry, err := s.journalRepo.FindLinesByJournalEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entry lines", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}
	entry.Lines = linesByEntry[journalEntryID]
	return entry, nil
}

// GetJournalEntriesByCompany lists a page of entries, newest first, each with its lines
func (s *journalService) GetJournalEntriesByCompany(ctx context.Context, companyID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := canonicalRefs(&companyID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = dto.DefaultJournalEntriesLimit
	}
	if limit > dto.MaxJournalEntriesLimit {
		limit = dto.MaxJournalEntriesLimit
	}

	entries, nextToken, err := s.journalRepo.ListJournalEntriesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.JournalEntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByJournalEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to load journal entry lines", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to load journal entry lines: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].JournalEntryID]
		}
	}

	res := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &res, nil
}

// resolveAccounts loads every referenced account and returns their types.
// Missing accounts are NotFound; inactive accounts are a validation failure.
func (s *journalService) resolveAccounts(ctx context.Context, companyID string, lines []domain.JournalEntryLine) (map[string]domain.AccountType, error) {
	seen := make(map[string]struct{}, len(lines))
	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		accountIDs = append(accountIDs, l.AccountID)
	}
	sort.Strings(accountIDs)

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}

	types := make(map[string]domain.AccountType, len(accountIDs))
	ve := &apperrors.ValidationError{}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			ve.Add("accountID", fmt.Sprintf("account %s is inactive", acc.Code))
			continue
		}
		types[id] = acc.AccountType
	}
	if ve.HasErrors() {
		return nil, ve
	}
	return types, nil
}

// withRetry re-runs a posting when its entry number collides with an existing one.
// The failed transaction rolled back its counter increment, so the counter is first
// raised past the stored numbers in a transaction of its own.
func (s *journalService) withRetry(ctx context.Context, companyID string, year func() int, post func() error) error {
	for attempt := 1; ; attempt++ {
		err := post()
		if !errors.Is(err, apperrors.ErrConflict) || attempt >= s.maxRetries {
			return err
		}
		s.LogWarn(ctx, "Entry number conflict, resynchronising counter",
			slog.String("company_id", companyID),
			slog.Int("attempt", attempt))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if syncErr := s.journalRepo.SyncEntrySequence(ctx, companyID, year()); syncErr != nil {
			return fmt.Errorf("failed to synchronise entry sequence: %w", syncErr)
		}
	}
}

func (s *journalService) invalidateMetrics(ctx context.Context, companyID string) {
	if s.metrics != nil {
		s.metrics.InvalidateCompany(ctx, companyID)
	}
}

// validateEntryRequest checks the request shape and returns the entry date and rounded lines.
func validateEntryRequest(req dto.CreateJournalEntryRequest) (time.Time, []domain.JournalEntryLine, error) {
	ve := &apperrors.ValidationError{}

	var entryDate time.Time
	if strings.TrimSpace(req.Date) == "" {
		ve.Add("date", "is required")
	} else if d, err := req.EntryDate(); err != nil {
		ve.Add("date", err.Error())
	} else {
		entryDate = d
	}
	if strings.TrimSpace(req.Description) == "" {
		ve.Add("description", "is required")
	}
	if len(req.Lines) < 2 {
		ve.Add("lines", "at least two lines are required")
	}

	lines := make([]domain.JournalEntryLine, 0, len(req.Lines))
	for i, l := range req.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		debit := accounting.RoundMoney(l.DebitAmount)
		credit := accounting.RoundMoney(l.CreditAmount)

		accountID, ok := ids.Canonical(l.AccountID)
		switch {
		case strings.TrimSpace(l.AccountID) == "":
			ve.Add(field+".accountID", "is required")
		case !ok:
			ve.Add(field+".accountID", "must be a valid UUID")
		}
		if debit.IsNegative() {
			ve.Add(field+".debitAmount", "must not be negative")
		}
		if credit.IsNegative() {
			ve.Add(field+".creditAmount", "must not be negative")
		}
		if debit.IsZero() == credit.IsZero() {
			ve.Add(field, "exactly one of debitAmount or creditAmount must be non-zero")
		}

		lines = append(lines, domain.JournalEntryLine{
			AccountID:    accountID,
			Description:  l.Description,
			DebitAmount:  debit,
			CreditAmount: credit,
		})
	}

	if ve.HasErrors() {
		return time.Time{}, nil, ve
	}
	return entryDate, lines, nil
}

// stampLines assigns IDs, ordering and the owning entry to a copy of lines.
func stampLines(lines []domain.JournalEntryLine, journalEntryID string, now time.Time) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.JournalEntryID = journalEntryID
		l.LineOrder = i + 1
		l.CreatedAt = now
		if l.DebitAmount.IsZero() {
			l.DebitAmount = decimal.Zero
		}
		if l.CreditAmount.IsZero() {
			l.CreditAmount = decimal.Zero
		}
		out[i] = l
	}
	return out
}
