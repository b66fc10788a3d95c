package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

// Transaction represents a stored transaction row.
// Note: Amount uses a precise decimal type, mapped to NUMERIC in the schema.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	UserID             string          `db:"user_id"`
	AccountID          string          `db:"account_id"`
	Type               TransactionType `db:"type"`
	Category           string          `db:"category"`
	Amount             decimal.Decimal `db:"amount"`
	Date               time.Time       `db:"date"`
	Description        string          `db:"description"`
	IsRecurring        bool            `db:"is_recurring"`
	RecurringFrequency *string         `db:"recurring_frequency"` // Nullable
	AuditFields
}
