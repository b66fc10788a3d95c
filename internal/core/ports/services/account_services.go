package services

import (
	"context"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/dto"
)

// AccountSvcFacade defines operations on bank accounts. API-facing methods
// check ownership and return the account number decrypted and masked;
// FindAccountByID is the raw lookup used by the ledger engine.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.BankAccount, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error)
	DeactivateAccount(ctx context.Context, userID string, accountID string) error
	GetTotalBalance(ctx context.Context, userID string) (*dto.TotalBalanceResponse, error)

	// FindAccountByID returns the account as stored, without ownership
	// checks or decryption. Ledger use only.
	FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)
}
