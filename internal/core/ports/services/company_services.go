package services

import (
	"context"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
)

// CompanyAuthorizerSvc checks company access
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns ErrForbidden unless the user holds requiredRole or higher in the company.
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.CompanyRole) error
}

// CompanyReaderSvc defines read operations for companies
type CompanyReaderSvc interface {
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for companies
type CompanyWriterSvc interface {
	// CreateCompany creates a company with the creator as ADMIN.
	CreateCompany(ctx context.Context, name string, creatorUserID string) (*domain.Company, error)

	// AddUserToCompany grants targetUserID a role; the adding user must be ADMIN.
	AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.CompanyRole) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyAuthorizerSvc
	CompanyReaderSvc
	CompanyWriterSvc
}
