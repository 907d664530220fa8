package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits carried by every stored amount.
const MoneyPlaces = 2

// BalanceTolerance is the largest |debits - credits| difference still accepted as balanced.
var BalanceTolerance = decimal.New(1, -MoneyPlaces)

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// BalanceDelta returns the signed change a line makes to an account of the given type.
//
// DEBIT-normal (ASSET/EXPENSE):               +debit - credit
// CREDIT-normal (LIABILITY/EQUITY/REVENUE):   +credit - debit
func BalanceDelta(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	debit, credit = RoundMoney(debit), RoundMoney(credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return RoundMoney(debit.Sub(credit)), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return RoundMoney(credit.Sub(debit)), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ApplyLine computes an account's new balance after a single line is posted to it.
func ApplyLine(current decimal.Decimal, accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	delta, err := BalanceDelta(accountType, debit, credit)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundMoney(RoundMoney(current).Add(delta)), nil
}

// BalanceChanges aggregates the per-account deltas of a set of lines.
// Every line's account must be present in accountTypes.
func BalanceChanges(lines []domain.JournalEntryLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", line.AccountID)
		}
		delta, err := BalanceDelta(accountType, line.DebitAmount, line.CreditAmount)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", line.AccountID, err)
		}
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes, nil
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func IsBalanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}
