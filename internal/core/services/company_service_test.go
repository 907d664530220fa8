package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "9a1d7c52-64e0-4f3b-8c2d-0e5f6a7b8c9d"

func TestCompanyService_CreateCompanyMakesCreatorAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCompanyRepository)
	svc := services.NewCompanyService(repo)

	repo.On("SaveCompany", ctx,
		mock.MatchedBy(func(c domain.Company) bool { return c.Name == "Acme Ltd" && c.IsActive }),
		mock.MatchedBy(func(u domain.CompanyUser) bool { return u.UserID == "user-1" && u.Role == domain.RoleAdmin }),
	).Return(nil).Once()

	company, err := svc.CreateCompany(ctx, "  Acme Ltd ", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", company.Name)
	assert.NotEmpty(t, company.CompanyID)
	repo.AssertExpectations(t)
}

func TestCompanyService_CreateCompanyRequiresName(t *testing.T) {
	svc := services.NewCompanyService(new(MockCompanyRepository))

	_, err := svc.CreateCompany(context.Background(), "", "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCompanyService_AuthorizeUserAction(t *testing.T) {
	testCases := []struct {
		name      string
		role      domain.CompanyRole
		repoErr   error
		required  domain.CompanyRole
		expectErr error
	}{
		{"admin may write", domain.RoleAdmin, nil, domain.RoleMember, nil},
		{"member may write", domain.RoleMember, nil, domain.RoleMember, nil},
		{"readonly may read", domain.RoleReadOnly, nil, domain.RoleReadOnly, nil},
		{"readonly may not write", domain.RoleReadOnly, nil, domain.RoleMember, apperrors.ErrForbidden},
		{"member may not overwrite balances", domain.RoleMember, nil, domain.RoleAdmin, apperrors.ErrForbidden},
		{"non-member", "", apperrors.ErrNotFound, domain.RoleReadOnly, apperrors.ErrForbidden},
		{"repository failure", "", assert.AnError, domain.RoleReadOnly, assert.AnError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockCompanyRepository)
			svc := services.NewCompanyService(repo)
			if tc.repoErr != nil {
				repo.On("FindCompanyUserRole", ctx, "user-1", testCompanyID).Return(nil, tc.repoErr).Once()
			} else {
				repo.On("FindCompanyUserRole", ctx, "user-1", testCompanyID).
					Return(&domain.CompanyUser{UserID: "user-1", CompanyID: testCompanyID, Role: tc.role}, nil).Once()
			}

			err := svc.AuthorizeUserAction(ctx, "user-1", testCompanyID, tc.required)

			if tc.expectErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectErr)
			}
		})
	}
}

func TestCompanyService_AuthorizeMalformedCompanyIsForbidden(t *testing.T) {
	repo := new(MockCompanyRepository)
	svc := services.NewCompanyService(repo)

	err := svc.AuthorizeUserAction(context.Background(), "user-1", "company-1", domain.RoleReadOnly)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "FindCompanyUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompanyService_AddUserToCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("admin adds member", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)
		repo.On("FindCompanyUserRole", ctx, "admin", testCompanyID).
			Return(&domain.CompanyUser{Role: domain.RoleAdmin}, nil).Once()
		repo.On("AddUserToCompany", ctx, mock.MatchedBy(func(m domain.CompanyUser) bool {
			return m.UserID == "user-2" && m.Role == domain.RoleReadOnly && m.CompanyID == testCompanyID
		})).Return(nil).Once()

		err := svc.AddUserToCompany(ctx, "admin", "user-2", testCompanyID, domain.RoleReadOnly)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("member cannot add", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)
		repo.On("FindCompanyUserRole", ctx, "member", testCompanyID).
			Return(&domain.CompanyUser{Role: domain.RoleMember}, nil).Once()

		err := svc.AddUserToCompany(ctx, "member", "user-2", testCompanyID, domain.RoleMember)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "AddUserToCompany", mock.Anything, mock.Anything)
	})

	t.Run("last admin cannot be demoted", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)
		repo.On("FindCompanyUserRole", ctx, "admin", testCompanyID).
			Return(&domain.CompanyUser{Role: domain.RoleAdmin}, nil).Once()
		repo.On("AddUserToCompany", ctx, mock.MatchedBy(func(m domain.CompanyUser) bool {
			return m.UserID == "admin" && m.Role == domain.RoleMember
		})).Return(apperrors.NewValidationError("role", "company must keep at least one ADMIN")).Once()

		err := svc.AddUserToCompany(ctx, "admin", "admin", testCompanyID, domain.RoleMember)

		require.ErrorIs(t, err, apperrors.ErrValidation)
		fields := apperrors.FieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "role", fields[0].Field)
		repo.AssertExpectations(t)
	})

	t.Run("uppercase company id is canonical", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)
		repo.On("FindCompanyUserRole", ctx, "admin", testCompanyID).
			Return(&domain.CompanyUser{Role: domain.RoleAdmin}, nil).Once()
		repo.On("AddUserToCompany", ctx, mock.MatchedBy(func(m domain.CompanyUser) bool {
			return m.CompanyID == testCompanyID
		})).Return(nil).Once()

		err := svc.AddUserToCompany(ctx, "admin", "user-2", strings.ToUpper(testCompanyID), domain.RoleMember)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("malformed company id", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)

		err := svc.AddUserToCompany(ctx, "admin", "user-2", "company-1", domain.RoleMember)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.AssertNotCalled(t, "FindCompanyUserRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid role", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := services.NewCompanyService(repo)
		repo.On("FindCompanyUserRole", ctx, "admin", testCompanyID).
			Return(&domain.CompanyUser{Role: domain.RoleAdmin}, nil).Once()

		err := svc.AddUserToCompany(ctx, "admin", "user-2", testCompanyID, "OWNER")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestCompanyService_ListUserCompaniesNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCompanyRepository)
	svc := services.NewCompanyService(repo)
	repo.On("ListCompaniesByUserID", ctx, "user-1").Return(nil, nil).Once()

	companies, err := svc.ListUserCompanies(ctx, "user-1")

	require.NoError(t, err)
	assert.NotNil(t, companies)
}
