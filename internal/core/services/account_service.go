package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	metrics     portssvc.MetricsSvc
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountCompanyAuthorizer sets the company authorizer for the account service
func WithAccountCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithAccountMetrics lets balance overwrites invalidate cached metrics
func WithAccountMetrics(metrics portssvc.MetricsSvc) AccountServiceOption {
	return func(s *accountService) {
		s.metrics = metrics
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountsByCompany returns the company's chart of accounts ordered by code
func (s *accountService) GetAccountsByCompany(ctx context.Context, companyID string, userID string) ([]domain.Account, error) {
	if err := canonicalRefs(&companyID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetAccount retrieves one account; accounts of other companies are reported as not found
func (s *accountService) GetAccount(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	if err := canonicalRefs(&companyID, &accountID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findCompanyAccount(ctx, companyID, accountID)
}

// GetAccountsByIDs resolves accounts of one company; missing IDs are absent from the map
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.String("company_id", companyID))
		return nil, err
	}
	return accounts, nil
}

// CreateAccount validates and persists a new account with a 0.00 balance
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := canonicalRefs(&companyID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)

	ve := &apperrors.ValidationError{}
	switch {
	case code == "":
		ve.Add("code", "is required")
	case utf8.RuneCountInString(code) > domain.MaxAccountCodeLength:
		ve.Add("code", fmt.Sprintf("must be at most %d characters", domain.MaxAccountCodeLength))
	}
	if name == "" {
		ve.Add("name", "is required")
	}
	if req.AccountType == "" {
		ve.Add("accountType", "is required")
	} else if !req.AccountType.IsValid() {
		ve.Add("accountType", "must be one of ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE")
	}
	var parentAccountID *string
	if req.ParentAccountID != nil && strings.TrimSpace(*req.ParentAccountID) != "" {
		if id, ok := ids.Canonical(*req.ParentAccountID); ok {
			parentAccountID = &id
		} else {
			ve.Add("parentAccountID", "must be a valid UUID")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if parentAccountID != nil {
		if _, err := s.findCompanyAccount(ctx, companyID, *parentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parentAccountID", "parent account not found")
			}
			return nil, err
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		Subtype:         strings.TrimSpace(req.Subtype),
		Description:     req.Description,
		ParentAccountID: parentAccountID,
		IsActive:        true,
		IsCashAccount:   req.IsCashAccount,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(userID, s.now().UTC()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("code", code))
	return &account, nil
}

// UpdateAccountBalance overwrites an account's stored balance
func (s *accountService) UpdateAccountBalance(ctx context.Context, companyID string, accountID string, newBalance decimal.Decimal, userID string) (*domain.Account, error) {
	if err := canonicalRefs(&companyID, &accountID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.findCompanyAccount(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rounded := accounting.RoundMoney(newBalance)
	if err := s.accountRepo.UpdateAccountBalance(ctx, accountID, rounded, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update account balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	if s.metrics != nil {
		s.metrics.InvalidateCompany(ctx, companyID)
	}

	s.LogInfo(ctx, "Account balance overwritten",
		slog.String("account_id", accountID),
		slog.String("old_balance", account.Balance.StringFixed(2)),
		slog.String("new_balance", rounded.StringFixed(2)))

	account.Balance = rounded
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	return account, nil
}

func (s *accountService) findCompanyAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.CompanyID != companyID {
		s.LogWarn(ctx, "Account belongs to a different company",
			slog.String("account_id", accountID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}
