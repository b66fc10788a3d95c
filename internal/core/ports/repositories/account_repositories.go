package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for bank accounts.
// Balance is never written directly; it changes only through the ledger
// effect applied by TransactionRepository.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.BankAccount) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error)
	UpdateAccount(ctx context.Context, account domain.BankAccount) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	// SumActiveBalances returns the total balance across the user's active
	// accounts together with the number of accounts summed, computed in a
	// single aggregation query.
	SumActiveBalances(ctx context.Context, userID string) (decimal.Decimal, int64, error)
}
