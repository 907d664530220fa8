package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_books_app/internal/models"
	"github.com/SscSPs/ledger_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountSelectQuery = `
SELECT
	a.account_id, a.company_id, a.code, a.name, a.account_type,
	COALESCE(a.subtype, '') AS subtype, COALESCE(a.description, '') AS description,
	a.parent_account_id, a.is_active, a.is_cash_account, a.balance,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM accounts a
`

// getAccounts runs the account select with the given filter.
func (r *PgxAccountRepository) getAccounts(ctx context.Context, filterQuery string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, accountSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	modelAccounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect account rows", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, company_id, code, name, account_type, subtype, description,
			parent_account_id, is_active, is_cash_account, balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.Code, m.Name, m.AccountType, m.Subtype, m.Description,
		m.ParentAccountID, m.IsActive, m.IsCashAccount, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, m.Code)
		case pgForeignKeyViolation:
			return apperrors.NewValidationError("parentAccountID", "parent account not found")
		}
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := r.getAccounts(ctx, `WHERE a.account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

// FindAccountsByIDs retrieves accounts of one company keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}
	accounts, err := r.getAccounts(ctx, `WHERE a.company_id = $1 AND a.account_id = ANY($2::uuid[])`, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		result[a.AccountID] = a
	}
	return result, nil
}

// ListAccountsByCompany retrieves all accounts of a company ordered by code.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	return r.getAccounts(ctx, `WHERE a.company_id = $1 ORDER BY a.code`, companyID)
}

// UpdateAccountBalance overwrites the stored balance.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, newBalance, now, userID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
