package dto

import (
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=10"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,account_type"`
	Subtype         string             `json:"subtype"`
	Description     string             `json:"description"`
	ParentAccountID *string            `json:"parentAccountID"`
	IsCashAccount   bool               `json:"isCashAccount"`
}

// UpdateAccountBalanceRequest overwrites an account's balance.
type UpdateAccountBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	CompanyID       string             `json:"companyID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	Subtype         string             `json:"subtype,omitempty"`
	Description     string             `json:"description,omitempty"`
	ParentAccountID *string            `json:"parentAccountID,omitempty"`
	IsActive        bool               `json:"isActive"`
	IsCashAccount   bool               `json:"isCashAccount"`
	Balance         string             `json:"balance"` // 2 decimal places
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps the accounts of a company.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		CompanyID:       acc.CompanyID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Subtype:         acc.Subtype,
		Description:     acc.Description,
		ParentAccountID: acc.ParentAccountID,
		IsActive:        acc.IsActive,
		IsCashAccount:   acc.IsCashAccount,
		Balance:         acc.Balance.StringFixed(2),
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a ListAccountsResponse DTO
func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	res := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		res.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
