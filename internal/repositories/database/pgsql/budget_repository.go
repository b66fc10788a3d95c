package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/fintrackr/personal_finance_app/internal/models"
	"github.com/fintrackr/personal_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{db: db}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepository
var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, user_id, category, amount, spent, period, start_date, end_date, alert_threshold, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Category,
		&m.Amount,
		&m.Spent,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.AlertThreshold,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := mapping.ToModelBudget(budget)
	query := `
        INSERT INTO budgets (` + budgetColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.UserID,
		modelBudget.Category,
		modelBudget.Amount,
		modelBudget.Spent,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.AlertThreshold,
		modelBudget.IsActive,
		modelBudget.CreatedAt,
		modelBudget.CreatedBy,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, modelBudget.BudgetID)
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.db.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	domainBudget := mapping.ToDomainBudget(m)
	return &domainBudget, nil
}

// FindMatchingBudget selects the single active budget covering (category,
// date) for the user. Ties between overlapping windows go to the most
// recently created budget; budget_id breaks exact creation-time ties so the
// choice is deterministic. A miss is not an error.
func (r *PgxBudgetRepository) FindMatchingBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error) {
	query := `
        SELECT ` + budgetColumns + `
        FROM budgets
        WHERE user_id = $1
          AND category = $2
          AND is_active = TRUE
          AND start_date <= $3
          AND end_date >= $3
        ORDER BY created_at DESC, budget_id DESC
        LIMIT 1;
    `
	m, err := scanBudget(r.db.QueryRow(ctx, query, userID, category, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find matching budget: %w", err)
	}
	domainBudget := mapping.ToDomainBudget(m)
	return &domainBudget, nil
}

func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string, filter portsrepo.BudgetFilter) ([]domain.Budget, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	query := `SELECT ` + budgetColumns + ` FROM budgets ` + where + ` ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	modelBudgets := []models.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		modelBudgets = append(modelBudgets, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}

	return mapping.ToDomainBudgetSlice(modelBudgets), nil
}

// UpdateBudget persists editable budget fields. Spent is deliberately not in
// the SET list; it only changes through ledger effects.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := mapping.ToModelBudget(budget)
	query := `
        UPDATE budgets
        SET amount = $1, period = $2, start_date = $3, end_date = $4,
            alert_threshold = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
        WHERE budget_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelBudget.Amount,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.AlertThreshold,
		modelBudget.IsActive,
		modelBudget.LastUpdatedAt,
		modelBudget.LastUpdatedBy,
		modelBudget.BudgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update budget query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
