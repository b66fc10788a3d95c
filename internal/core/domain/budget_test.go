package domain_test

import (
	"testing"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudget_Status(t *testing.T) {
	tests := []struct {
		name                 string
		budget               domain.Budget
		wantPercentage       string
		wantRemaining        string
		wantExceeded         bool
		wantAlertTriggered   bool
	}{
		{
			name: "at alert threshold but not exceeded",
			budget: domain.Budget{
				Amount:         decimal.NewFromInt(100),
				Spent:          decimal.NewFromInt(80),
				AlertThreshold: 80,
			},
			wantPercentage:     "80",
			wantRemaining:      "20",
			wantExceeded:       false,
			wantAlertTriggered: true,
		},
		{
			name: "exceeded",
			budget: domain.Budget{
				Amount:         decimal.NewFromInt(100),
				Spent:          decimal.NewFromInt(120),
				AlertThreshold: 80,
			},
			wantPercentage:     "120",
			wantRemaining:      "-20",
			wantExceeded:       true,
			wantAlertTriggered: true,
		},
		{
			name: "below threshold",
			budget: domain.Budget{
				Amount:         decimal.NewFromInt(200),
				Spent:          decimal.NewFromInt(45),
				AlertThreshold: 80,
			},
			wantPercentage:     "22.5",
			wantRemaining:      "155",
			wantExceeded:       false,
			wantAlertTriggered: false,
		},
		{
			name: "spent exactly at cap is not exceeded",
			budget: domain.Budget{
				Amount:         decimal.NewFromInt(100),
				Spent:          decimal.NewFromInt(100),
				AlertThreshold: 80,
			},
			wantPercentage:     "100",
			wantRemaining:      "0",
			wantExceeded:       false,
			wantAlertTriggered: true,
		},
		{
			name: "zero cap with no spend",
			budget: domain.Budget{
				Amount:         decimal.Zero,
				Spent:          decimal.Zero,
				AlertThreshold: 80,
			},
			wantPercentage:     "0",
			wantRemaining:      "0",
			wantExceeded:       false,
			wantAlertTriggered: false,
		},
		{
			name: "zero cap with spend",
			budget: domain.Budget{
				Amount:         decimal.Zero,
				Spent:          decimal.NewFromInt(10),
				AlertThreshold: 80,
			},
			wantPercentage:     "100",
			wantRemaining:      "-10",
			wantExceeded:       true,
			wantAlertTriggered: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.budget.Status()
			assert.True(t, status.PercentageSpent.Equal(decimal.RequireFromString(tt.wantPercentage)),
				"percentageSpent = %s, want %s", status.PercentageSpent, tt.wantPercentage)
			assert.True(t, status.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)),
				"remaining = %s, want %s", status.Remaining, tt.wantRemaining)
			assert.Equal(t, tt.wantExceeded, status.IsExceeded)
			assert.Equal(t, tt.wantAlertTriggered, status.IsAlertTriggered)
		})
	}
}

func TestBudget_Contains(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	b := domain.Budget{StartDate: start, EndDate: end}

	assert.True(t, b.Contains(start), "start date is inclusive")
	assert.True(t, b.Contains(end), "end date is inclusive")
	assert.True(t, b.Contains(start.AddDate(0, 0, 15)))
	assert.False(t, b.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, b.Contains(end.AddDate(0, 0, 1)))
}

func TestBudgetAlerts(t *testing.T) {
	budgets := []domain.Budget{
		{
			BudgetID:       "b1",
			Category:       domain.CategoryFood,
			Amount:         decimal.NewFromInt(100),
			Spent:          decimal.NewFromInt(120),
			AlertThreshold: 80,
		},
		{
			BudgetID:       "b2",
			Category:       domain.CategoryTransport,
			Amount:         decimal.NewFromInt(100),
			Spent:          decimal.NewFromInt(30),
			AlertThreshold: 80,
		},
		{
			BudgetID:       "b3",
			Category:       domain.CategoryShopping,
			Amount:         decimal.NewFromInt(200),
			Spent:          decimal.NewFromInt(171),
			AlertThreshold: 85,
		},
	}

	alerts := domain.BudgetAlerts(budgets)

	assert.Len(t, alerts, 2)
	assert.Equal(t, "b1", alerts[0].BudgetID)
	assert.Equal(t, "Budget exceeded for food", alerts[0].Message)
	assert.True(t, alerts[0].IsExceeded)
	assert.Equal(t, "b3", alerts[1].BudgetID)
	// 171/200 = 85.5%, rounded down in the message.
	assert.Equal(t, "Budget alert: 85% spent on shopping", alerts[1].Message)
	assert.False(t, alerts[1].IsExceeded)
}
