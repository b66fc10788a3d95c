package dto

import (
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
)

// TransactionStatsParams defines the optional date range for the summary.
type TransactionStatsParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// TransactionSummaryResponse wraps the aggregated statistics.
type TransactionSummaryResponse struct {
	TotalIncome        string                 `json:"totalIncome"`
	TotalExpenses      string                 `json:"totalExpenses"`
	Balance            string                 `json:"balance"`
	ExpensesByCategory []domain.CategoryTotal `json:"expensesByCategory"`
	IncomeByCategory   []domain.CategoryTotal `json:"incomeByCategory"`
}

// ToTransactionSummaryResponse converts a domain summary.
func ToTransactionSummaryResponse(s *domain.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		TotalIncome:        s.TotalIncome.String(),
		TotalExpenses:      s.TotalExpenses.String(),
		Balance:            s.Balance.String(),
		ExpensesByCategory: s.ExpensesByCategory,
		IncomeByCategory:   s.IncomeByCategory,
	}
}
