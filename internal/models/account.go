package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountType mirrors domain.BankAccountType at the persistence layer.
type BankAccountType string

// BankAccount represents a stored bank account row. AccountNumber holds the
// encrypted ciphertext, never plaintext.
type BankAccount struct {
	AccountID     string          `db:"account_id"`
	UserID        string          `db:"user_id"`
	AccountName   string          `db:"account_name"`
	BankName      string          `db:"bank_name"`
	AccountNumber string          `db:"account_number"`
	AccountType   BankAccountType `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	CurrencyCode  string          `db:"currency_code"`
	IsActive      bool            `db:"is_active"`
	LastSyncedAt  time.Time       `db:"last_synced_at"`
	AuditFields
}
