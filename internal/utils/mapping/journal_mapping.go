package mapping

import (
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		CompanyID:      d.CompanyID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      d.Date,
		Description:    d.Description,
		Reference:      d.Reference,
		TotalAmount:    d.TotalAmount,
		Status:         string(d.Status),
		ReversalOfID:   d.ReversalOfID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		CompanyID:      m.CompanyID,
		EntryNumber:    m.EntryNumber,
		Date:           m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		TotalAmount:    m.TotalAmount,
		Status:         domain.JournalEntryStatus(m.Status),
		ReversalOfID:   m.ReversalOfID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Description:    d.Description,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		LineOrder:      d.LineOrder,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Description:    m.Description,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		LineOrder:      m.LineOrder,
		CreatedAt:      m.CreatedAt,
	}
}
