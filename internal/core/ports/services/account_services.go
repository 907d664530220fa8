package services

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountsByCompany returns every account of the company ordered by code.
	GetAccountsByCompany(ctx context.Context, companyID string, userID string) ([]domain.Account, error)

	// GetAccount retrieves one account of the company.
	GetAccount(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountsByIDs resolves several accounts of the company at once, keyed by ID.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccountBalance overwrites an account's balance. Requires the ADMIN role.
	UpdateAccountBalance(ctx context.Context, companyID string, accountID string, newBalance decimal.Decimal, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
