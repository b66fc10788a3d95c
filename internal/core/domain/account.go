package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountType defines the kind of bank account.
type BankAccountType string

const (
	Checking   BankAccountType = "checking"
	Savings    BankAccountType = "savings"
	Credit     BankAccountType = "credit"
	Investment BankAccountType = "investment"
)

// ValidBankAccountType reports whether t is a known account type.
func ValidBankAccountType(t BankAccountType) bool {
	switch t {
	case Checking, Savings, Credit, Investment:
		return true
	}
	return false
}

// BankAccount represents a user's bank account. Balance is the signed sum of
// the effects of all transactions applied against it; it is mutated only via
// atomic increments, never read-modify-write.
type BankAccount struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`    // Owning user (Not Null)
	AccountName   string          `json:"accountName"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"` // Stored encrypted; plaintext only at the service edge
	AccountType   BankAccountType `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	IsActive      bool            `json:"isActive"`
	LastSyncedAt  time.Time       `json:"lastSyncedAt"`
	AuditFields
}
