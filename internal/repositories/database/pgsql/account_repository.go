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
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	db *pgxpool.Pool
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, account_name, bank_name, account_number, account_type, balance, currency_code, is_active, last_synced_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountName,
		&m.BankName,
		&m.AccountNumber,
		&m.AccountType,
		&m.Balance,
		&m.CurrencyCode,
		&m.IsActive,
		&m.LastSyncedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	modelAcc := mapping.ToModelBankAccount(account)
	query := `
        INSERT INTO bank_accounts (` + accountColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.AccountName,
		modelAcc.BankName,
		modelAcc.AccountNumber,
		modelAcc.AccountType,
		modelAcc.Balance,
		modelAcc.CurrencyCode,
		modelAcc.IsActive,
		modelAcc.LastSyncedAt,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_id = $1;`
	m, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	domainAcc := mapping.ToDomainBankAccount(m)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts := []models.BankAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}

	return mapping.ToDomainBankAccountSlice(modelAccounts), nil
}

// UpdateAccount persists editable account fields. Balance is deliberately not
// part of the SET list; it only changes through ledger effects.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.BankAccount) error {
	modelAcc := mapping.ToModelBankAccount(account)
	query := `
        UPDATE bank_accounts
        SET account_name = $1, bank_name = $2, account_number = $3, account_type = $4,
            is_active = $5, last_updated_at = $6, last_updated_by = $7
        WHERE account_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelAcc.AccountName,
		modelAcc.BankName,
		modelAcc.AccountNumber,
		modelAcc.AccountType,
		modelAcc.IsActive,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
		modelAcc.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
        UPDATE bank_accounts
        SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE account_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) SumActiveBalances(ctx context.Context, userID string) (decimal.Decimal, int64, error) {
	query := `
        SELECT COALESCE(SUM(balance), 0), COUNT(*)
        FROM bank_accounts
        WHERE user_id = $1 AND is_active = TRUE;
    `
	var total decimal.Decimal
	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, count, nil
}
