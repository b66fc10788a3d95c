package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines grouped aggregation queries over transactions.
type ReportingRepository interface {
	// GetCategoryTotals runs a single grouped-sum pass over the user's
	// transactions in the optional date range and returns per-category
	// totals and counts for each type, sorted by total descending.
	GetCategoryTotals(ctx context.Context, userID string, from, to *time.Time) (income []domain.CategoryTotal, expenses []domain.CategoryTotal, err error)
	// SumExpensesInWindow returns the summed amount of the user's expense
	// transactions in category within [start, end] inclusive. Used to seed
	// a new budget's spent total from pre-existing transactions.
	SumExpensesInWindow(ctx context.Context, userID string, category domain.Category, start, end time.Time) (decimal.Decimal, error)
}
