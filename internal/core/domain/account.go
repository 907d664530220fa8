package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting classification of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every recognized classification.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five recognized classifications.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether balances of this type increase on the debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// MaxAccountCodeLength bounds the company-unique account code.
const MaxAccountCodeLength = 10

// Account is an entry in a company's chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	CompanyID       string          `json:"companyID"`
	Code            string          `json:"code"` // unique per company
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	Subtype         string          `json:"subtype"`
	Description     string          `json:"description"`
	ParentAccountID *string         `json:"parentAccountID"`
	IsActive        bool            `json:"isActive"`
	IsCashAccount   bool            `json:"isCashAccount"`
	Balance         decimal.Decimal `json:"balance"` // 2 decimal places, mutated only by posting
	AuditFields
}
