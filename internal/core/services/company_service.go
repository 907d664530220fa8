package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	now         func() time.Time
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	svc := &companyService{
		companyRepo: companyRepo,
		now:         time.Now,
	}
	// Membership checks on the company service itself go through its own authorizer.
	svc.CompanyAuthorizer = svc
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a company and makes the creator its ADMIN
func (s *companyService) CreateCompany(ctx context.Context, name string, creatorUserID string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}

	now := s.now().UTC()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        name,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	creator := domain.CompanyUser{
		CompanyID: company.CompanyID,
		UserID:    creatorUserID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}

	if err := s.companyRepo.SaveCompany(ctx, company, creator); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// ListUserCompanies retrieves all companies a user belongs to
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user", slog.String("user_id", userID))
		return nil, err
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// AddUserToCompany grants a user a role in a company; only ADMINs may do this
func (s *companyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.CompanyRole) error {
	if err := canonicalRefs(&companyID); err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	ve := &apperrors.ValidationError{}
	if strings.TrimSpace(targetUserID) == "" {
		ve.Add("userID", "is required")
	}
	if !role.IsValid() {
		ve.Add("role", "must be one of ADMIN, MEMBER, READONLY")
	}
	if ve.HasErrors() {
		return ve
	}

	membership := domain.CompanyUser{
		CompanyID: companyID,
		UserID:    targetUserID,
		Role:      role,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			s.LogWarn(ctx, "Role change rejected",
				slog.String("company_id", companyID),
				slog.String("target_user_id", targetUserID),
				slog.String("error", err.Error()))
			return err
		}
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("company_id", companyID),
			slog.String("target_user_id", targetUserID))
		return err
	}

	s.LogInfo(ctx, "User added to company",
		slog.String("company_id", companyID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks that the user holds requiredRole or higher in the company
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.CompanyRole) error {
	if err := canonicalRefs(&companyID); err != nil {
		return apperrors.ErrForbidden
	}
	membership, err := s.companyRepo.FindCompanyUserRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of company",
				slog.String("user_id", userID),
				slog.String("company_id", companyID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find company membership",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}
