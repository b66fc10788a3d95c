package dto

import (
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	AccountName   string                 `json:"accountName" binding:"required"`
	BankName      string                 `json:"bankName" binding:"required"`
	AccountNumber string                 `json:"accountNumber" binding:"required"`
	AccountType   domain.BankAccountType `json:"accountType" binding:"omitempty,oneof=checking savings credit investment"`
	Balance       decimal.Decimal        `json:"balance"` // Opening balance, defaults to zero
	CurrencyCode  string                 `json:"currency" binding:"omitempty,len=3"`
}

// UpdateBankAccountRequest defines the fields allowed for updating a bank
// account. Pointers distinguish zero-value updates from fields not provided.
type UpdateBankAccountRequest struct {
	AccountName   *string                 `json:"accountName"`
	BankName      *string                 `json:"bankName"`
	AccountNumber *string                 `json:"accountNumber"`
	AccountType   *domain.BankAccountType `json:"accountType" binding:"omitempty,oneof=checking savings credit investment"`
	IsActive      *bool                   `json:"isActive"`
}

// BankAccountResponse defines the data returned for a bank account. The
// account number is decrypted and masked to its last four digits.
type BankAccountResponse struct {
	AccountID        string                 `json:"accountID"`
	AccountName      string                 `json:"accountName"`
	BankName         string                 `json:"bankName"`
	AccountNumber    string                 `json:"accountNumber"`
	AccountType      domain.BankAccountType `json:"accountType"`
	Balance          decimal.Decimal        `json:"balance"`
	FormattedBalance string                 `json:"formattedBalance"`
	CurrencyCode     string                 `json:"currency"`
	IsActive         bool                   `json:"isActive"`
	LastSyncedAt     time.Time              `json:"lastSynced"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO.
// The account number on acc must already be decrypted and masked.
func ToBankAccountResponse(acc *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		AccountID:        acc.AccountID,
		AccountName:      acc.AccountName,
		BankName:         acc.BankName,
		AccountNumber:    acc.AccountNumber,
		AccountType:      acc.AccountType,
		Balance:          acc.Balance,
		FormattedBalance: utils.FormatWithCurrency(acc.Balance, acc.CurrencyCode),
		CurrencyCode:     acc.CurrencyCode,
		IsActive:         acc.IsActive,
		LastSyncedAt:     acc.LastSyncedAt,
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ListBankAccountsResponse wraps the list of bank accounts.
type ListBankAccountsResponse struct {
	Count    int                   `json:"count"`
	Accounts []BankAccountResponse `json:"accounts"`
}

// ToListBankAccountsResponse converts a slice of domain accounts.
func ToListBankAccountsResponse(accounts []domain.BankAccount) ListBankAccountsResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToBankAccountResponse(&acc)
	}
	return ListBankAccountsResponse{Count: len(res), Accounts: res}
}

// TotalBalanceResponse is the aggregate balance across active accounts.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	AccountCount int64           `json:"accountCount"`
}
