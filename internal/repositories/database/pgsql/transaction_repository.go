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

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, account_id, type, category, amount, date, description, is_recurring, recurring_frequency, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.Type,
		&m.Category,
		&m.Amount,
		&m.Date,
		&m.Description,
		&m.IsRecurring,
		&m.RecurringFrequency,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// applyLedgerEffect applies the account balance delta and every budget spend
// delta inside tx as in-place increments. Budget spent totals are clamped at
// zero; the IDs of clamped budgets are returned so the caller can surface a
// consistency warning.
func (r *PgxTransactionRepository) applyLedgerEffect(ctx context.Context, tx pgx.Tx, effect portsrepo.LedgerEffect, now time.Time, userID string) ([]string, error) {
	if !effect.BalanceDelta.IsZero() {
		query := `
            UPDATE bank_accounts
            SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
            WHERE account_id = $4;
        `
		cmdTag, err := tx.Exec(ctx, query, effect.BalanceDelta, now, userID, effect.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to apply balance delta to account %s: %w", effect.AccountID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, fmt.Errorf("account %s not found while applying balance delta: %w", effect.AccountID, apperrors.ErrNotFound)
		}
	}

	var clamped []string
	// The CTE captures the pre-image so a clamp is detected in the same
	// statement that applies the increment, without a read-modify-write.
	spendQuery := `
        WITH pre AS (
            SELECT spent FROM budgets WHERE budget_id = $1 FOR UPDATE
        )
        UPDATE budgets b
        SET spent = GREATEST(b.spent + $2, 0), last_updated_at = $3, last_updated_by = $4
        FROM pre
        WHERE b.budget_id = $1
        RETURNING (pre.spent + $2) < 0 AS was_clamped;
    `
	for _, sd := range effect.SpendDeltas {
		if sd.Delta.IsZero() {
			continue
		}
		var wasClamped bool
		err := tx.QueryRow(ctx, spendQuery, sd.BudgetID, sd.Delta, now, userID).Scan(&wasClamped)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("budget %s not found while applying spend delta: %w", sd.BudgetID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to apply spend delta to budget %s: %w", sd.BudgetID, err)
		}
		if wasClamped {
			clamped = append(clamped, sd.BudgetID)
		}
	}
	return clamped, nil
}

// SaveTransaction inserts the transaction row and applies its ledger effect
// within one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	query := `
        INSERT INTO transactions (` + transactionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.Type,
		modelTxn.Category,
		modelTxn.Amount,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.IsRecurring,
		modelTxn.RecurringFrequency,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if _, err := r.applyLedgerEffect(ctx, tx, effect, txn.CreatedAt, txn.CreatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites the editable transaction fields and applies the
// reverse-then-reapply ledger effect within one database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	query := `
        UPDATE transactions
        SET type = $1, category = $2, amount = $3, date = $4, description = $5,
            is_recurring = $6, recurring_frequency = $7, last_updated_at = $8, last_updated_by = $9
        WHERE transaction_id = $10;
    `
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.Type,
		modelTxn.Category,
		modelTxn.Amount,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.IsRecurring,
		modelTxn.RecurringFrequency,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		modelTxn.TransactionID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}

	clamped, err := r.applyLedgerEffect(ctx, tx, effect, txn.LastUpdatedAt, txn.LastUpdatedBy)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return clamped, nil
}

// DeleteTransaction removes the row and applies the reversing ledger effect
// within one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, effect portsrepo.LedgerEffect) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}

	clamped, err := r.applyLedgerEffect(ctx, tx, effect, time.Now(), "")
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return clamped, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// ListTransactions returns the matching page, newest first, plus the total
// match count for pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + where +
		fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(modelTxns), total, nil
}
