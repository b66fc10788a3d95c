package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a grouped transaction aggregation: the summed
// amount and record count for a single category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// TransactionSummary aggregates a user's transactions over an optional date
// range: overall totals plus per-category breakdowns for each type, sorted
// by total descending.
type TransactionSummary struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Balance            decimal.Decimal `json:"balance"` // income - expenses
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	IncomeByCategory   []CategoryTotal `json:"incomeByCategory"`
}
