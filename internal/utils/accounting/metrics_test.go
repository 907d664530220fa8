package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsCashAccount(t *testing.T) {
	assert.True(t, IsCashAccount(domain.Account{Name: "Petty Cash", AccountType: domain.Asset}))
	assert.True(t, IsCashAccount(domain.Account{Name: "CHASE BANK", AccountType: domain.Asset}))
	assert.True(t, IsCashAccount(domain.Account{Name: "Undeposited funds", AccountType: domain.Asset, IsCashAccount: true}))
	assert.False(t, IsCashAccount(domain.Account{Name: "Inventory", AccountType: domain.Asset}))
	assert.False(t, IsCashAccount(domain.Account{Name: "Bank fees", AccountType: domain.Expense}))
}

func TestAggregateMetrics(t *testing.T) {
	accounts := []domain.Account{
		{Name: "Cash", AccountType: domain.Asset, Balance: dec("1500.00")},
		{Name: "Business Bank", AccountType: domain.Asset, Balance: dec("250.50")},
		{Name: "Equipment", AccountType: domain.Asset, Balance: dec("9000.00")},
		{Name: "Sales", AccountType: domain.Revenue, Balance: dec("500.00")},
		{Name: "Services", AccountType: domain.Revenue, Balance: dec("125.00")},
		{Name: "Rent", AccountType: domain.Expense, Balance: dec("300.00")},
		{Name: "Loan", AccountType: domain.Liability, Balance: dec("4000.00")},
	}

	m := AggregateMetrics(accounts)

	assert.Equal(t, "625.00", m.TotalRevenue.StringFixed(2))
	assert.Equal(t, "300.00", m.TotalExpenses.StringFixed(2))
	assert.Equal(t, "325.00", m.NetProfit.StringFixed(2))
	assert.Equal(t, "1750.50", m.CashBalance.StringFixed(2))
}

func TestAggregateMetrics_NoAccounts(t *testing.T) {
	m := AggregateMetrics(nil)

	assert.Equal(t, "0.00", m.TotalRevenue.StringFixed(2))
	assert.Equal(t, "0.00", m.TotalExpenses.StringFixed(2))
	assert.Equal(t, "0.00", m.NetProfit.StringFixed(2))
	assert.Equal(t, "0.00", m.CashBalance.StringFixed(2))
}
