package mapping

import (
	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/SscSPs/ledger_books_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		CompanyID:       d.CompanyID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		Subtype:         d.Subtype,
		Description:     d.Description,
		ParentAccountID: d.ParentAccountID,
		IsActive:        d.IsActive,
		IsCashAccount:   d.IsCashAccount,
		Balance:         d.Balance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Subtype:         m.Subtype,
		Description:     m.Description,
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		IsCashAccount:   m.IsCashAccount,
		Balance:         m.Balance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
