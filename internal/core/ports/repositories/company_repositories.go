package repositories

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
)

// CompanyReader defines read operations for companies and memberships
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUserID lists the companies a user belongs to.
	ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error)

	// FindCompanyUserRole retrieves a user's membership; ErrNotFound when the user is not a member.
	FindCompanyUserRole(ctx context.Context, userID, companyID string) (*domain.CompanyUser, error)
}

// CompanyWriter defines write operations for companies and memberships
type CompanyWriter interface {
	// SaveCompany persists a company and its creator's ADMIN membership together.
	SaveCompany(ctx context.Context, company domain.Company, creator domain.CompanyUser) error

	// AddUserToCompany adds or updates a membership.
	AddUserToCompany(ctx context.Context, membership domain.CompanyUser) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
