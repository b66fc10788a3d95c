package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendDelta is a signed change to one budget's spent total.
type SpendDelta struct {
	BudgetID string
	Delta    decimal.Decimal
}

// LedgerEffect is the complete set of ledger mutations that must commit
// atomically with a transaction write: one signed balance change on the
// owning account and zero or more spend changes on matched budgets.
type LedgerEffect struct {
	AccountID    string
	BalanceDelta decimal.Decimal
	SpendDeltas  []SpendDelta
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type      *domain.TransactionType
	Category  *domain.Category
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository defines persistence operations for transactions.
//
// SaveTransaction, UpdateTransaction and DeleteTransaction each run as one
// database transaction: the row write plus every ledger mutation in the
// effect succeed or fail together. Balance and spent changes are applied as
// atomic in-place increments, never read-modify-write. Update and Delete
// return the IDs of any budgets whose spent total had to be clamped at zero
// so the caller can log a consistency warning.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, effect LedgerEffect) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction, effect LedgerEffect) ([]string, error)
	DeleteTransaction(ctx context.Context, transactionID string, effect LedgerEffect) ([]string, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns the matching page and the total match count.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, int64, error)
}
