package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	db *pgxpool.Pool
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{db: db}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetCategoryTotals aggregates the user's transactions in one grouped pass
// and splits the rows by type. Ordering puts the biggest totals first within
// each type.
func (r *ReportingRepository) GetCategoryTotals(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategoryTotal, []domain.CategoryTotal, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query := `
        SELECT type, category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
        FROM transactions
        ` + where + `
        GROUP BY type, category
        ORDER BY type, total DESC;
    `
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	income := []domain.CategoryTotal{}
	expenses := []domain.CategoryTotal{}
	for rows.Next() {
		var txnType string
		var ct domain.CategoryTotal
		if err := rows.Scan(&txnType, &ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		switch domain.TransactionType(txnType) {
		case domain.Income:
			income = append(income, ct)
		case domain.Expense:
			expenses = append(expenses, ct)
		}
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating category total rows: %w", rows.Err())
	}

	return income, expenses, nil
}

// SumExpensesInWindow totals the user's expense transactions for category
// inside [start, end] inclusive.
func (r *ReportingRepository) SumExpensesInWindow(ctx context.Context, userID string, category domain.Category, start, end time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE user_id = $1 AND type = $2 AND category = $3 AND date >= $4 AND date <= $5;
    `
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID, domain.Expense, category, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses in window: %w", err)
	}
	return total, nil
}
