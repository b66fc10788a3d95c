package domain_test

import (
	"testing"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_EffectOnBalance(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        string
	}{
		{
			name: "income increases balance",
			transaction: domain.Transaction{
				Type:   domain.Income,
				Amount: decimal.NewFromFloat(250.50),
			},
			want: "250.5",
		},
		{
			name: "expense decreases balance",
			transaction: domain.Transaction{
				Type:   domain.Expense,
				Amount: decimal.NewFromFloat(45.00),
			},
			want: "-45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.EffectOnBalance()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"effect = %s, want %s", got, tt.want)
		})
	}
}

func TestValidCategoryForType(t *testing.T) {
	tests := []struct {
		name     string
		txType   domain.TransactionType
		category domain.Category
		want     bool
	}{
		{"salary is income", domain.Income, domain.CategorySalary, true},
		{"food is not income", domain.Income, domain.CategoryFood, false},
		{"food is expense", domain.Expense, domain.CategoryFood, true},
		{"salary is not expense", domain.Expense, domain.CategorySalary, false},
		{"unknown category", domain.Expense, domain.Category("lottery"), false},
		{"unknown type", domain.TransactionType("transfer"), domain.CategoryFood, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidCategoryForType(tt.txType, tt.category))
		})
	}
}
