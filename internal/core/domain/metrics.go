package domain

import "github.com/shopspring/decimal"

// FinancialMetrics summarizes current account balances for dashboards.
type FinancialMetrics struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	CashBalance   decimal.Decimal `json:"cashBalance"`
}
