package mapping

import (
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		UserID:         d.UserID,
		Category:       string(d.Category),
		Amount:         d.Amount,
		Spent:          d.Spent,
		Period:         string(d.Period),
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		AlertThreshold: d.AlertThreshold,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		UserID:         m.UserID,
		Category:       domain.Category(m.Category),
		Amount:         m.Amount,
		Spent:          m.Spent,
		Period:         domain.BudgetPeriod(m.Period),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		AlertThreshold: m.AlertThreshold,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to a slice of domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
