package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyLine(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		accountType domain.AccountType
		debit       string
		credit      string
		want        string
	}{
		{name: "debit increases asset", current: "1000.00", accountType: domain.Asset, debit: "500.00", credit: "0", want: "1500.00"},
		{name: "credit decreases asset", current: "1000.00", accountType: domain.Asset, debit: "0", credit: "250.25", want: "749.75"},
		{name: "debit increases expense", current: "0.00", accountType: domain.Expense, debit: "42.10", credit: "0", want: "42.10"},
		{name: "credit increases revenue", current: "0.00", accountType: domain.Revenue, debit: "0", credit: "500.00", want: "500.00"},
		{name: "debit decreases liability", current: "300.00", accountType: domain.Liability, debit: "100.00", credit: "0", want: "200.00"},
		{name: "credit increases equity", current: "10.00", accountType: domain.Equity, debit: "0", credit: "0.01", want: "10.01"},
		{name: "amounts are rounded to cents", current: "0", accountType: domain.Asset, debit: "0.005", credit: "0", want: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyLine(dec(tt.current), tt.accountType, dec(tt.debit), dec(tt.credit))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestApplyLine_UnknownType(t *testing.T) {
	_, err := ApplyLine(decimal.Zero, domain.AccountType("INCOME"), dec("1"), decimal.Zero)
	assert.Error(t, err)
}

func TestBalanceChanges_MatchesSequentialApplication(t *testing.T) {
	cashID, revenueID := "cash", "revenue"
	types := map[string]domain.AccountType{cashID: domain.Asset, revenueID: domain.Revenue}
	lines := []domain.JournalEntryLine{
		{AccountID: cashID, DebitAmount: dec("500.00"), CreditAmount: decimal.Zero},
		{AccountID: cashID, DebitAmount: dec("20.00"), CreditAmount: decimal.Zero},
		{AccountID: cashID, DebitAmount: decimal.Zero, CreditAmount: dec("5.00")},
		{AccountID: revenueID, DebitAmount: decimal.Zero, CreditAmount: dec("515.00")},
	}

	changes, err := BalanceChanges(lines, types)
	require.NoError(t, err)

	balances := map[string]decimal.Decimal{cashID: dec("1000.00"), revenueID: decimal.Zero}
	for _, l := range lines {
		next, err := ApplyLine(balances[l.AccountID], types[l.AccountID], l.DebitAmount, l.CreditAmount)
		require.NoError(t, err)
		balances[l.AccountID] = next
	}

	assert.Equal(t, "515.00", changes[cashID].StringFixed(2))
	assert.Equal(t, "515.00", changes[revenueID].StringFixed(2))
	assert.Equal(t, balances[cashID].StringFixed(2), dec("1000.00").Add(changes[cashID]).StringFixed(2))
	assert.Equal(t, balances[revenueID].StringFixed(2), changes[revenueID].StringFixed(2))
}

func TestBalanceChanges_MissingAccountType(t *testing.T) {
	_, err := BalanceChanges([]domain.JournalEntryLine{{AccountID: "ghost", DebitAmount: dec("1")}}, map[string]domain.AccountType{})
	assert.Error(t, err)
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, IsBalanced(dec("500.00"), dec("500.00")))
	assert.True(t, IsBalanced(dec("500.00"), dec("499.99")))
	assert.False(t, IsBalanced(dec("500.00"), dec("499.98")))
	assert.False(t, IsBalanced(dec("300.00"), dec("250.00")))
}
