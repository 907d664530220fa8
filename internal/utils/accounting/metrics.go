package accounting

import (
	"strings"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var cashNameMarkers = []string{"cash", "bank"}

// IsCashAccount reports whether an account counts toward the cash balance: an asset that is
// either flagged explicitly or whose name mentions cash or bank.
func IsCashAccount(acc domain.Account) bool {
	if acc.AccountType != domain.Asset {
		return false
	}
	if acc.IsCashAccount {
		return true
	}
	folded := cases.Fold().String(acc.Name)
	for _, marker := range cashNameMarkers {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}

// AggregateMetrics sums current balances into dashboard figures.
// Missing account types contribute zero.
func AggregateMetrics(accounts []domain.Account) domain.FinancialMetrics {
	revenue, expenses, cash := decimal.Zero, decimal.Zero, decimal.Zero
	for _, acc := range accounts {
		switch acc.AccountType {
		case domain.Revenue:
			revenue = revenue.Add(acc.Balance)
		case domain.Expense:
			expenses = expenses.Add(acc.Balance)
		}
		if IsCashAccount(acc) {
			cash = cash.Add(acc.Balance)
		}
	}
	return domain.FinancialMetrics{
		TotalRevenue:  RoundMoney(revenue),
		TotalExpenses: RoundMoney(expenses),
		NetProfit:     RoundMoney(revenue.Sub(expenses)),
		CashBalance:   RoundMoney(cash),
	}
}
