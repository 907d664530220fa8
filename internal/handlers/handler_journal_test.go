package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	apiSuite
}

func (s *JournalHandlerTestSuite) postedEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		CompanyID:      s.companyID,
		EntryNumber:    "JE2024-0001",
		Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:    "Cash sale",
		TotalAmount:    decimal.NewFromInt(500),
		Status:         domain.Posted,
		AuditFields:    domain.NewAuditFields(s.userID, time.Now()),
	}
}

func (s *JournalHandlerTestSuite) cashSaleBody() map[string]any {
	return map[string]any{
		"date":        "2024-03-15",
		"description": "Cash sale",
		"lines": []map[string]any{
			{"accountID": "cash", "debitAmount": "500.00"},
			{"accountID": "revenue", "creditAmount": "500.00"},
		},
	}
}

func (s *JournalHandlerTestSuite) TestCreateJournalEntry_Success() {
	entry := s.postedEntry()
	s.mockJournalService.On("CreateJournalEntry", mock.Anything, s.companyID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return req.Description == "Cash sale" && len(req.Lines) == 2 &&
				req.Lines[0].DebitAmount.Equal(decimal.NewFromInt(500)) &&
				req.Lines[1].CreditAmount.Equal(decimal.NewFromInt(500))
		}),
		s.userID,
	).Return(entry, nil).Once()

	w := s.do(http.MethodPost, s.companyPath("/journal-entries"), s.cashSaleBody())

	s.Equal(http.StatusCreated, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("JE2024-0001", resp["entryNumber"])
	s.Equal("500.00", resp["totalAmount"])
	s.Equal("2024-03-15", resp["date"])
	s.Equal("POSTED", resp["status"])
	s.NotContains(resp, "lines")
}

func (s *JournalHandlerTestSuite) TestCreateJournalEntry_ServiceErrorsMapToStatus() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unbalanced", fmt.Errorf("%w: debits 500.00, credits 400.00", apperrors.ErrUnbalanced), http.StatusUnprocessableEntity},
		{"validation", apperrors.NewValidationError("lines[0]", "exactly one of debitAmount or creditAmount must be non-zero"), http.StatusBadRequest},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"unknown account", fmt.Errorf("%w: account cash", apperrors.ErrNotFound), http.StatusNotFound},
		{"entry number conflict", fmt.Errorf("posting: %w", apperrors.ErrConflict), http.StatusConflict},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.mockJournalService.On("CreateJournalEntry", mock.Anything, s.companyID, mock.Anything, s.userID).
				Return(nil, tc.err).Once()

			w := s.do(http.MethodPost, s.companyPath("/journal-entries"), s.cashSaleBody())

			s.Equal(tc.wantStatus, w.Code)
			s.mockJournalService.AssertExpectations(s.T())
		})
	}
}

func (s *JournalHandlerTestSuite) TestCreateJournalEntry_ValidationFieldsReturned() {
	s.mockJournalService.On("CreateJournalEntry", mock.Anything, s.companyID, mock.Anything, s.userID).
		Return(nil, apperrors.NewValidationError("lines[1]", "exactly one of debitAmount or creditAmount must be non-zero")).Once()

	w := s.do(http.MethodPost, s.companyPath("/journal-entries"), s.cashSaleBody())

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decodeError(w)
	s.Equal([]string{"lines[1]"}, body.fieldNames())
}

func (s *JournalHandlerTestSuite) TestCreateJournalEntry_StorageErrorIsNotLeaked() {
	s.mockJournalService.On("CreateJournalEntry", mock.Anything, s.companyID, mock.Anything, s.userID).
		Return(nil, errors.New("pq: password authentication failed")).Once()

	w := s.do(http.MethodPost, s.companyPath("/journal-entries"), s.cashSaleBody())

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "password")
}

func (s *JournalHandlerTestSuite) TestCreateJournalEntry_BindFailures() {
	tests := []struct {
		name       string
		body       any
		wantFields []string
	}{
		{
			name:       "missing description",
			body:       map[string]any{"date": "2024-03-15", "lines": []map[string]any{{"accountID": "cash"}}},
			wantFields: []string{"description"},
		},
		{
			name: "line without account",
			body: map[string]any{
				"date":        "2024-03-15",
				"description": "x",
				"lines":       []map[string]any{{"debitAmount": "1"}, {"accountID": "b", "creditAmount": "1"}},
			},
			wantFields: []string{"lines[0].accountID"},
		},
		{
			name:       "malformed json",
			body:       `{"date": `,
			wantFields: []string{},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			w := s.do(http.MethodPost, s.companyPath("/journal-entries"), tc.body)

			s.Equal(http.StatusBadRequest, w.Code)
			s.ElementsMatch(tc.wantFields, s.decodeError(w).fieldNames())
		})
	}
	s.mockJournalService.AssertNotCalled(s.T(), "CreateJournalEntry")
}

func (s *JournalHandlerTestSuite) TestListJournalEntries_PassesPagination() {
	next := "token-2"
	entry := s.postedEntry()
	entry.Lines = []domain.JournalEntryLine{
		{LineID: uuid.NewString(), AccountID: "cash", DebitAmount: decimal.NewFromInt(500), CreditAmount: decimal.Zero},
		{LineID: uuid.NewString(), AccountID: "revenue", DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(500)},
	}
	page := dto.ToListJournalEntriesResponse([]domain.JournalEntry{*entry}, &next)

	s.mockJournalService.On("GetJournalEntriesByCompany", mock.Anything, s.companyID, s.userID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == 10 && p.NextToken != nil && *p.NextToken == "token-1"
		}),
	).Return(&page, nil).Once()

	w := s.do(http.MethodGet, s.companyPath("/journal-entries?limit=10&nextToken=token-1"), nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.JournalEntries, 1)
	s.Len(resp.JournalEntries[0].Lines, 2)
	s.Equal("500.00", resp.JournalEntries[0].Lines[0].DebitAmount)
	s.Require().NotNil(resp.NextToken)
	s.Equal("token-2", *resp.NextToken)
}

func (s *JournalHandlerTestSuite) TestListJournalEntries_InvalidToken() {
	s.mockJournalService.On("GetJournalEntriesByCompany", mock.Anything, s.companyID, s.userID, mock.Anything).
		Return(nil, apperrors.NewValidationError("nextToken", "invalid pagination token")).Once()

	w := s.do(http.MethodGet, s.companyPath("/journal-entries?nextToken=garbage"), nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"nextToken"}, s.decodeError(w).fieldNames())
}

func (s *JournalHandlerTestSuite) TestListJournalEntries_NonNumericLimit() {
	w := s.do(http.MethodGet, s.companyPath("/journal-entries?limit=ten"), nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockJournalService.AssertNotCalled(s.T(), "GetJournalEntriesByCompany")
}

func (s *JournalHandlerTestSuite) TestGetJournalEntry_NotFound() {
	entryID := uuid.NewString()
	s.mockJournalService.On("GetJournalEntry", mock.Anything, s.companyID, entryID, s.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, s.companyPath("/journal-entries/"+entryID), nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *JournalHandlerTestSuite) TestReverseJournalEntry_Success() {
	original := s.postedEntry()
	reversal := s.postedEntry()
	reversal.EntryNumber = "JE2025-0001"
	reversal.Description = "Reversal of JE2024-0001"
	reversal.ReversalOfID = &original.JournalEntryID

	s.mockJournalService.On("ReverseJournalEntry", mock.Anything, s.companyID, original.JournalEntryID, s.userID).
		Return(reversal, nil).Once()

	w := s.do(http.MethodPost, s.companyPath("/journal-entries/"+original.JournalEntryID+"/reverse"), nil)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("JE2025-0001", resp.EntryNumber)
	s.Require().NotNil(resp.ReversalOfID)
	s.Equal(original.JournalEntryID, *resp.ReversalOfID)
}

func (s *JournalHandlerTestSuite) TestReverseJournalEntry_AlreadyReversed() {
	entryID := uuid.NewString()
	s.mockJournalService.On("ReverseJournalEntry", mock.Anything, s.companyID, entryID, s.userID).
		Return(nil, apperrors.NewValidationError("status", "only POSTED entries can be reversed")).Once()

	w := s.do(http.MethodPost, s.companyPath("/journal-entries/"+entryID+"/reverse"), nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"status"}, s.decodeError(w).fieldNames())
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
