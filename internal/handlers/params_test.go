package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PathIDTestSuite struct {
	apiSuite
}

func (s *PathIDTestSuite) TestMalformedIDsAreNotFound() {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"company", http.MethodGet, "/api/v1/companies/acme/accounts"},
		{"company on metrics", http.MethodGet, "/api/v1/companies/1234/metrics"},
		{"account", http.MethodGet, s.companyPath("/accounts/not-a-uuid")},
		{"account balance", http.MethodPut, s.companyPath("/accounts/42/balance")},
		{"journal entry", http.MethodGet, s.companyPath("/journal-entries/JE2024-0001")},
		{"reversal", http.MethodPost, s.companyPath("/journal-entries/xyz/reverse")},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			w := s.do(tc.method, tc.path, `{"balance": "1"}`)

			s.Equal(http.StatusNotFound, w.Code)
			s.Contains(s.decodeError(w).Error, "not found")
		})
	}
	s.mockAccountService.AssertNotCalled(s.T(), "GetAccountsByCompany", mock.Anything, mock.Anything, mock.Anything)
	s.mockAccountService.AssertNotCalled(s.T(), "GetAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockAccountService.AssertNotCalled(s.T(), "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockJournalService.AssertNotCalled(s.T(), "GetJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockJournalService.AssertNotCalled(s.T(), "ReverseJournalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockMetricsService.AssertNotCalled(s.T(), "GetFinancialMetrics", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PathIDTestSuite) TestUppercaseIDsReachServicesCanonical() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, CompanyID: s.companyID, Code: "1000", Name: "Cash", AccountType: domain.Asset}
	s.mockAccountService.On("GetAccount", mock.Anything, s.companyID, accountID, s.userID).Return(account, nil).Once()

	path := "/api/v1/companies/" + strings.ToUpper(s.companyID) + "/accounts/" + strings.ToUpper(accountID)
	w := s.do(http.MethodGet, path, nil)

	s.Equal(http.StatusOK, w.Code)
}

func TestPathIDs(t *testing.T) {
	suite.Run(t, new(PathIDTestSuite))
}
