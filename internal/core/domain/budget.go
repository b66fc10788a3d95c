package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is informational; the matching window is [StartDate, EndDate].
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// ValidBudgetPeriod reports whether p is a known period.
func ValidBudgetPeriod(p BudgetPeriod) bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// DefaultAlertThreshold is the percentage at which a budget alert fires
// unless the user chose another value.
const DefaultAlertThreshold = 80

// Budget caps spending for one expense category over a date window. Spent is
// an incrementally maintained cache of the amounts of all live matched
// expense transactions, clamped at zero; it is never recomputed by a live
// query on the read path.
type Budget struct {
	BudgetID       string          `json:"budgetID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`   // Owning user (Not Null)
	Category       Category        `json:"category"` // Expense category only
	Amount         decimal.Decimal `json:"amount"`   // Cap, non-negative
	Spent          decimal.Decimal `json:"spent"`    // Running total, non-negative
	Period         BudgetPeriod    `json:"period"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	AlertThreshold int             `json:"alertThreshold"` // 0-100
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Contains reports whether date falls inside the budget window, inclusive on
// both ends.
func (b Budget) Contains(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// PercentageSpent derives spent/amount*100. A zero cap yields 0 when nothing
// was spent and 100 otherwise, keeping the derivation total.
func (b Budget) PercentageSpent() decimal.Decimal {
	if b.Amount.IsZero() {
		if b.Spent.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100))
}

// Remaining derives amount-spent; negative when the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// IsExceeded reports whether spending is strictly above the cap.
func (b Budget) IsExceeded() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// IsAlertTriggered reports whether the spent percentage reached the alert
// threshold.
func (b Budget) IsAlertTriggered() bool {
	return b.PercentageSpent().GreaterThanOrEqual(decimal.NewFromInt(int64(b.AlertThreshold)))
}

// BudgetStatus holds the derived, never-stored status fields of a budget.
type BudgetStatus struct {
	PercentageSpent  decimal.Decimal `json:"percentageSpent"`
	Remaining        decimal.Decimal `json:"remaining"`
	IsExceeded       bool            `json:"isExceeded"`
	IsAlertTriggered bool            `json:"isAlertTriggered"`
}

// Status derives the full status of the budget.
func (b Budget) Status() BudgetStatus {
	return BudgetStatus{
		PercentageSpent:  b.PercentageSpent(),
		Remaining:        b.Remaining(),
		IsExceeded:       b.IsExceeded(),
		IsAlertTriggered: b.IsAlertTriggered(),
	}
}

// BudgetAlert is the user-facing notification for a budget that is exceeded
// or past its alert threshold.
type BudgetAlert struct {
	BudgetID        string          `json:"budgetId"`
	Category        Category        `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Spent           decimal.Decimal `json:"spent"`
	PercentageSpent decimal.Decimal `json:"percentageSpent"`
	IsExceeded      bool            `json:"isExceeded"`
	Message         string          `json:"message"`
}

// Alert builds the alert payload for the budget. The percentage in the alert
// message is rounded down.
func (b Budget) Alert() BudgetAlert {
	pct := b.PercentageSpent()
	message := fmt.Sprintf("Budget alert: %s%% spent on %s", pct.Floor().String(), b.Category)
	if b.IsExceeded() {
		message = fmt.Sprintf("Budget exceeded for %s", b.Category)
	}
	return BudgetAlert{
		BudgetID:        b.BudgetID,
		Category:        b.Category,
		Amount:          b.Amount,
		Spent:           b.Spent,
		PercentageSpent: pct,
		IsExceeded:      b.IsExceeded(),
		Message:         message,
	}
}

// BudgetAlerts returns alerts for the subset of budgets that are exceeded or
// past their alert threshold, in input order.
func BudgetAlerts(budgets []Budget) []BudgetAlert {
	alerts := make([]BudgetAlert, 0)
	for _, b := range budgets {
		if b.IsExceeded() || b.IsAlertTriggered() {
			alerts = append(alerts, b.Alert())
		}
	}
	return alerts
}
