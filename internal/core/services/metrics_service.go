package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_books_app/internal/utils/accounting"
	"golang.org/x/sync/singleflight"
)

// metricsService implements the MetricsSvc interface
type metricsService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	cache       portsrepo.MetricsCache
	group       singleflight.Group
}

// MetricsServiceOption is a functional option for configuring the metrics service
type MetricsServiceOption func(*metricsService)

// WithMetricsCompanyAuthorizer sets the company authorizer for the metrics service
func WithMetricsCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) MetricsServiceOption {
	return func(s *metricsService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithMetricsCache enables read-through caching of computed metrics
func WithMetricsCache(cache portsrepo.MetricsCache) MetricsServiceOption {
	return func(s *metricsService) {
		s.cache = cache
	}
}

// NewMetricsService creates a new metrics service with the provided options
func NewMetricsService(accountRepo portsrepo.AccountReader, options ...MetricsServiceOption) portssvc.MetricsSvc {
	svc := &metricsService{accountRepo: accountRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MetricsSvc = (*metricsService)(nil)

// GetFinancialMetrics aggregates revenue, expenses, net profit and cash from account balances
func (s *metricsService) GetFinancialMetrics(ctx context.Context, companyID string, userID string) (*domain.FinancialMetrics, error) {
	if err := canonicalRefs(&companyID); err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(companyID, func() (any, error) {
		// The result is handed to every caller waiting on this key, not only the first.
		loadCtx := context.WithoutCancel(ctx)
		if s.cache != nil {
			metrics, err := s.cache.Fetch(loadCtx, companyID, func(ctx context.Context) (domain.FinancialMetrics, error) {
				return s.compute(ctx, companyID)
			})
			if err == nil {
				return metrics, nil
			}
			s.LogWarn(ctx, "Metrics cache unavailable, computing directly",
				slog.String("company_id", companyID),
				slog.String("error", err.Error()))
		}
		return s.compute(loadCtx, companyID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute financial metrics", slog.String("company_id", companyID))
		return nil, err
	}
	if shared {
		s.LogDebug(ctx, "Financial metrics shared with concurrent request", slog.String("company_id", companyID))
	}

	metrics := v.(domain.FinancialMetrics)
	return &metrics, nil
}

// InvalidateCompany drops cached metrics for the company; failures are logged only
func (s *metricsService) InvalidateCompany(ctx context.Context, companyID string) {
	s.group.Forget(companyID)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.LogWarn(ctx, "Failed to invalidate metrics cache",
			slog.String("company_id", companyID),
			slog.String("error", err.Error()))
	}
}

func (s *metricsService) compute(ctx context.Context, companyID string) (domain.FinancialMetrics, error) {
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounting.AggregateMetrics(accounts), nil
}
