package dto

import "github.com/SscSPs/ledger_books_app/internal/core/domain"

// FinancialMetricsResponse carries dashboard figures as 2-decimal strings.
type FinancialMetricsResponse struct {
	TotalRevenue  string `json:"totalRevenue"`
	TotalExpenses string `json:"totalExpenses"`
	NetProfit     string `json:"netProfit"`
	CashBalance   string `json:"cashBalance"`
}

// ToFinancialMetricsResponse converts metrics to their wire form.
func ToFinancialMetricsResponse(m domain.FinancialMetrics) FinancialMetricsResponse {
	return FinancialMetricsResponse{
		TotalRevenue:  m.TotalRevenue.StringFixed(2),
		TotalExpenses: m.TotalExpenses.StringFixed(2),
		NetProfit:     m.NetProfit.StringFixed(2),
		CashBalance:   m.CashBalance.StringFixed(2),
	}
}
