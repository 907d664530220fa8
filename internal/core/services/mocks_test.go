package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, newBalance, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
	Tx *MockJournalTx
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByJournalEntryIDs(ctx context.Context, journalEntryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	args := m.Called(ctx, journalEntryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalEntryLine), args.Error(1)
}

// WithTx records the call and runs fn against the mock transaction.
// A non-nil configured error simulates a failure to begin the transaction.
func (m *MockJournalRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.JournalTxRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

func (m *MockJournalRepository) SyncEntrySequence(ctx context.Context, companyID string, year int) error {
	args := m.Called(ctx, companyID, year)
	return args.Error(0)
}

// --- Mock JournalTxRepository ---
type MockJournalTx struct {
	mock.Mock
}

var _ portsrepo.JournalTxRepository = (*MockJournalTx)(nil)

func (m *MockJournalTx) NextEntrySequence(ctx context.Context, companyID string, year int) (int, error) {
	args := m.Called(ctx, companyID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalTx) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalTx) InsertJournalEntryLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockJournalTx) ApplyBalanceChanges(ctx context.Context, companyID string, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, changes, userID, now)
	return args.Error(0)
}

func (m *MockJournalTx) FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalTx) UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.JournalEntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, journalEntryID, status, userID, now)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyUserRole(ctx context.Context, userID, companyID string) (*domain.CompanyUser, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyUser), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creator domain.CompanyUser) error {
	args := m.Called(ctx, company, creator)
	return args.Error(0)
}

func (m *MockCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.CompanyUser) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock MetricsCache ---
type MockMetricsCache struct {
	mock.Mock
}

var _ portsrepo.MetricsCache = (*MockMetricsCache)(nil)

// Fetch returns the configured metrics, or runs load when the configured value is nil (a miss).
func (m *MockMetricsCache) Fetch(ctx context.Context, companyID string, load portsrepo.MetricsLoader) (domain.FinancialMetrics, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		if err := args.Error(1); err != nil {
			return domain.FinancialMetrics{}, err
		}
		return load(ctx)
	}
	return args.Get(0).(domain.FinancialMetrics), args.Error(1)
}

func (m *MockMetricsCache) Invalidate(ctx context.Context, companyID string) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.CompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

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

// --- Mock MetricsService ---
type MockMetricsService struct {
	mock.Mock
}

var _ portssvc.MetricsSvc = (*MockMetricsService)(nil)

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
