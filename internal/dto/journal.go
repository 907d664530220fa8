package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultJournalEntriesLimit is used when no limit is requested.
	DefaultJournalEntriesLimit = 50
	// MaxJournalEntriesLimit caps a single page.
	MaxJournalEntriesLimit = 200
)

var entryDateLayouts = []string{"2006-01-02", time.RFC3339}

// CreateJournalEntryLineRequest is one debit or credit line of a new entry.
type CreateJournalEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalEntryRequest defines the header and lines of a new journal entry.
type CreateJournalEntryRequest struct {
	Date        string                          `json:"date" binding:"required"` // YYYY-MM-DD or RFC3339
	Description string                          `json:"description" binding:"required"`
	Reference   *string                         `json:"reference"`
	Lines       []CreateJournalEntryLineRequest `json:"lines" binding:"required,dive"`
}

// EntryDate parses Date, truncated to a calendar day in UTC.
func (r CreateJournalEntryRequest) EntryDate() (time.Time, error) {
	for _, layout := range entryDateLayouts {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", r.Date)
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// JournalEntryLineResponse is a line as returned by the API.
type JournalEntryLineResponse struct {
	LineID       string `json:"lineID"`
	AccountID    string `json:"accountID"`
	Description  string `json:"description,omitempty"`
	DebitAmount  string `json:"debitAmount"`
	CreditAmount string `json:"creditAmount"`
}

// JournalEntryResponse is an entry as returned by the API.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	CompanyID      string                     `json:"companyID"`
	EntryNumber    string                     `json:"entryNumber"`
	Date           string                     `json:"date"`
	Description    string                     `json:"description"`
	Reference      *string                    `json:"reference,omitempty"`
	TotalAmount    string                     `json:"totalAmount"`
	Status         domain.JournalEntryStatus  `json:"status"`
	ReversalOfID   *string                    `json:"reversalOfID,omitempty"`
	Lines          []JournalEntryLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
}

// ListJournalEntriesResponse is a page of entries, each embedding its lines.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry (and any loaded lines) to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	res := JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		CompanyID:      e.CompanyID,
		EntryNumber:    e.EntryNumber,
		Date:           e.Date.Format("2006-01-02"),
		Description:    e.Description,
		Reference:      e.Reference,
		TotalAmount:    e.TotalAmount.StringFixed(2),
		Status:         e.Status,
		ReversalOfID:   e.ReversalOfID,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		res.Lines = make([]JournalEntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			res.Lines[i] = JournalEntryLineResponse{
				LineID:       l.LineID,
				AccountID:    l.AccountID,
				Description:  l.Description,
				DebitAmount:  l.DebitAmount.StringFixed(2),
				CreditAmount: l.CreditAmount.StringFixed(2),
			}
		}
	}
	return res
}

// ToListJournalEntriesResponse converts a page of entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := ListJournalEntriesResponse{
		JournalEntries: make([]JournalEntryResponse, len(entries)),
		NextToken:      nextToken,
	}
	for i := range entries {
		res.JournalEntries[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
