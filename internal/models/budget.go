package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a stored budget row. Spent is maintained incrementally by
// the transaction repository inside the same database transaction that writes
// the matched transaction row.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	UserID         string          `db:"user_id"`
	Category       string          `db:"category"`
	Amount         decimal.Decimal `db:"amount"`
	Spent          decimal.Decimal `db:"spent"`
	Period         string          `db:"period"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	AlertThreshold int             `db:"alert_threshold"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
