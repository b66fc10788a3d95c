package dto

import (
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget. Only
// expense categories are budgetable; the service enforces membership.
type CreateBudgetRequest struct {
	Category       domain.Category     `json:"category" binding:"required,expcategory"`
	Amount         decimal.Decimal     `json:"amount" binding:"required"`
	Period         domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	StartDate      time.Time           `json:"startDate" binding:"required"`
	EndDate        time.Time           `json:"endDate" binding:"required"`
	AlertThreshold *int                `json:"alertThreshold" binding:"omitempty,min=0,max=100"`
}

// UpdateBudgetRequest defines the fields allowed for updating a budget.
type UpdateBudgetRequest struct {
	Amount         *decimal.Decimal     `json:"amount"`
	Period         *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	StartDate      *time.Time           `json:"startDate"`
	EndDate        *time.Time           `json:"endDate"`
	AlertThreshold *int                 `json:"alertThreshold" binding:"omitempty,min=0,max=100"`
	IsActive       *bool                `json:"isActive"`
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	IsActive *bool            `form:"isActive"`
	Category *domain.Category `form:"category" binding:"omitempty,expcategory"`
}

// BudgetResponse defines the data returned for a budget, annotated with its
// derived status fields.
type BudgetResponse struct {
	BudgetID         string              `json:"budgetID"`
	Category         domain.Category     `json:"category"`
	Amount           decimal.Decimal     `json:"amount"`
	Spent            decimal.Decimal     `json:"spent"`
	Period           domain.BudgetPeriod `json:"period"`
	StartDate        time.Time           `json:"startDate"`
	EndDate          time.Time           `json:"endDate"`
	AlertThreshold   int                 `json:"alertThreshold"`
	IsActive         bool                `json:"isActive"`
	PercentageSpent  decimal.Decimal     `json:"percentageSpent"`
	Remaining        decimal.Decimal     `json:"remaining"`
	IsExceeded       bool                `json:"isExceeded"`
	IsAlertTriggered bool                `json:"isAlertTriggered"`
	CreatedAt        time.Time           `json:"createdAt"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
}

// ToBudgetResponse converts a domain.Budget and its derived status.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	status := b.Status()
	return BudgetResponse{
		BudgetID:         b.BudgetID,
		Category:         b.Category,
		Amount:           b.Amount,
		Spent:            b.Spent,
		Period:           b.Period,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		AlertThreshold:   b.AlertThreshold,
		IsActive:         b.IsActive,
		PercentageSpent:  status.PercentageSpent.Round(2),
		Remaining:        status.Remaining,
		IsExceeded:       status.IsExceeded,
		IsAlertTriggered: status.IsAlertTriggered,
		CreatedAt:        b.CreatedAt,
		LastUpdatedAt:    b.LastUpdatedAt,
	}
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Count   int              `json:"count"`
	Budgets []BudgetResponse `json:"budgets"`
}

// ToListBudgetsResponse converts a slice of domain budgets.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return ListBudgetsResponse{Count: len(res), Budgets: res}
}

// BudgetAlertsResponse wraps the list of triggered budget alerts.
type BudgetAlertsResponse struct {
	Count  int                  `json:"count"`
	Alerts []domain.BudgetAlert `json:"alerts"`
}
