package mapping

import (
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/models"
)

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanyUser converts a model CompanyUser to a domain CompanyUser
func ToDomainCompanyUser(m models.CompanyUser) domain.CompanyUser {
	return domain.CompanyUser{
		CompanyID: m.CompanyID,
		UserID:    m.UserID,
		Role:      domain.CompanyRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}
