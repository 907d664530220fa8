package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	CompanyID       string          `db:"company_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	Subtype         string          `db:"subtype"`
	Description     string          `db:"description"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	IsActive        bool            `db:"is_active"`
	IsCashAccount   bool            `db:"is_cash_account"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}
