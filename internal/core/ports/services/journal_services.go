package services

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntriesByCompany lists entries newest first, each with its lines.
	GetJournalEntriesByCompany(ctx context.Context, companyID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// GetJournalEntry retrieves one entry with its lines.
	GetJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines posting operations
type JournalWriterSvc interface {
	// CreateJournalEntry validates, numbers, persists and applies a balanced entry atomically.
	// The returned entry does not embed its lines.
	CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ReverseJournalEntry posts a mirror entry and marks the original REVERSED.
	ReverseJournalEntry(ctx context.Context, companyID string, journalEntryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
