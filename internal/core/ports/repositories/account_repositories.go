package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of one company with the given IDs, keyed by ID.
	// IDs that do not exist in the company are simply absent from the result.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByCompany retrieves every account of a company ordered by code.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code in the company yields ErrConflict.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalance overwrites the stored balance.
	UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
