package handlers_test

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountsByCompany(ctx context.Context, companyID string, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccountBalance(ctx context.Context, companyID string, accountID string, newBalance decimal.Decimal, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, newBalance, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntriesByCompany(ctx context.Context, companyID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, companyID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, journalEntryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, journalEntryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.CompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

func (m *MockCompanyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, name string, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.CompanyRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, companyID, role)
	return args.Error(0)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) GetFinancialMetrics(ctx context.Context, companyID string, userID string) (*domain.FinancialMetrics, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialMetrics), args.Error(1)
}

func (m *MockMetricsService) InvalidateCompany(ctx context.Context, companyID string) {
	m.Called(ctx, companyID)
}

var _ portssvc.MetricsSvc = (*MockMetricsService)(nil)
