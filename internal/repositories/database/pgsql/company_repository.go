package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_books_app/internal/apperrors"
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_books_app/internal/models"
	"github.com/SscSPs/ledger_books_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companySelectQuery = `
SELECT
	c.company_id, c.name, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	rows, err := r.Pool.Query(ctx, companySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	modelCompanies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}
	companies := make([]domain.Company, len(modelCompanies))
	for i, m := range modelCompanies {
		companies[i] = mapping.ToDomainCompany(m)
	}
	return companies, nil
}

// SaveCompany inserts the company and its creator's membership in one transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creator domain.CompanyUser) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO companies (company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, company.CompanyID, company.Name, company.IsActive,
			company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return fmt.Errorf("%w: company %s already exists", apperrors.ErrConflict, company.CompanyID)
			}
			return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO company_users (company_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4);
		`, creator.CompanyID, creator.UserID, string(creator.Role), creator.JoinedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to add creator to company "+company.CompanyID, err)
		}
		return nil
	})
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE c.company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

// ListCompaniesByUserID lists active companies the user belongs to, by name.
func (r *PgxCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	return r.getCompanies(ctx, `
		JOIN company_users cu ON cu.company_id = c.company_id
		WHERE cu.user_id = $1 AND c.is_active
		ORDER BY c.name`, userID)
}

// FindCompanyUserRole retrieves a user's membership in a company.
func (r *PgxCompanyRepository) FindCompanyUserRole(ctx context.Context, userID, companyID string) (*domain.CompanyUser, error) {
	query := `
		SELECT cu.company_id, cu.user_id, cu.role, cu.joined_at
		FROM company_users cu
		JOIN companies c ON c.company_id = cu.company_id
		WHERE cu.user_id = $1 AND cu.company_id = $2 AND c.is_active;
	`
	rows, err := r.Pool.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query company membership", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CompanyUser])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect company membership", err)
	}
	membership := mapping.ToDomainCompanyUser(m)
	return &membership, nil
}

// AddUserToCompany adds a user or updates their role if they are already a member.
// The company's ADMIN rows are locked first so concurrent demotions cannot remove the last ADMIN.
func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.CompanyUser) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT user_id FROM company_users
			WHERE company_id = $1 AND role = 'ADMIN'
			FOR UPDATE;
		`, membership.CompanyID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to lock company admins", err)
		}
		admins, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return apperrors.NewAppError(500, "failed to collect company admins", err)
		}
		if domain.LeavesNoAdmin(admins, membership.UserID, membership.Role) {
			return apperrors.NewValidationError("role", "company must keep at least one ADMIN")
		}

		query := `
			INSERT INTO company_users (company_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (company_id, user_id) DO UPDATE SET role = EXCLUDED.role;
		`
		_, err = tx.Exec(ctx, query, membership.CompanyID, membership.UserID, string(membership.Role), membership.JoinedAt)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to company "+membership.CompanyID, err)
		}
		return nil
	})
}
