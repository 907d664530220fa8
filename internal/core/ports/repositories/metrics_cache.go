package repositories

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
)

// MetricsLoader computes fresh metrics on a cache miss.
type MetricsLoader func(ctx context.Context) (domain.FinancialMetrics, error)

// MetricsCache stores computed financial metrics per company.
type MetricsCache interface {
	// Fetch returns cached metrics for the company or populates the cache using load.
	Fetch(ctx context.Context, companyID string, load MetricsLoader) (domain.FinancialMetrics, error)

	// Invalidate discards every cached value for the company.
	Invalidate(ctx context.Context, companyID string) error
}
