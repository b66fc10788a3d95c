package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense movement against a bank
// account. The account and owner references are immutable after creation;
// type, category, amount and date may be edited.
type Transaction struct {
	TransactionID      string              `json:"transactionID"` // Primary Key (UUID)
	UserID             string              `json:"userID"`        // FK -> users.user_id (Not Null)
	AccountID          string              `json:"accountID"`     // FK -> bank_accounts.account_id (Not Null)
	Type               TransactionType     `json:"type"`          // income or expense
	Category           Category            `json:"category"`      // scoped by Type
	Amount             decimal.Decimal     `json:"amount"`        // Positive value; precise decimal type
	Date               time.Time           `json:"date"`
	Description        string              `json:"description"` // Nullable
	IsRecurring        bool                `json:"isRecurring"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency,omitempty"`
	AuditFields
}

// EffectOnBalance returns the signed amount this transaction contributes to
// its account balance: income increases, expense decreases.
func (t Transaction) EffectOnBalance() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
