package services

import (
	"github.com/SscSPs/ledger_books_app/internal/platform/config"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories and the shared company authorizer.
// cache may be nil, in which case metrics are computed on every request.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.MetricsCache) *portssvc.ServiceContainer {
	companySvc := NewCompanyService(repos.CompanyRepo)

	metricsOpts := []MetricsServiceOption{WithMetricsCompanyAuthorizer(companySvc)}
	if cache != nil {
		metricsOpts = append(metricsOpts, WithMetricsCache(cache))
	}
	metricsSvc := NewMetricsService(repos.AccountRepo, metricsOpts...)

	accountSvc := NewAccountService(repos.AccountRepo,
		WithAccountCompanyAuthorizer(companySvc),
		WithAccountMetrics(metricsSvc))

	journalSvc := NewJournalService(repos.JournalRepo, accountSvc,
		WithJournalCompanyAuthorizer(companySvc),
		WithJournalMetrics(metricsSvc),
		WithPostingMaxRetries(cfg.PostingMaxRetries))

	return &portssvc.ServiceContainer{
		Account: accountSvc,
		Journal: journalSvc,
		Company: companySvc,
		Metrics: metricsSvc,
	}
}
