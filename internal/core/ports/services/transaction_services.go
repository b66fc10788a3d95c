package services

import (
	"context"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/dto"
)

// TransactionSvcFacade defines the ledger engine operations. Every mutation
// keeps the owning account's balance and any matched budget's spent total
// consistent with the set of live transactions, atomically per call.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
