package services

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
)

// MetricsSvc produces dashboard figures from current account balances.
type MetricsSvc interface {
	GetFinancialMetrics(ctx context.Context, companyID string, userID string) (*domain.FinancialMetrics, error)

	// InvalidateCompany drops any cached figures after balances change.
	InvalidateCompany(ctx context.Context, companyID string)
}
