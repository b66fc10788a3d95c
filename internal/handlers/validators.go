package handlers

import (
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators wires the closed category sets into gin's binding
// validator so request DTOs can declare them as tags.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// txcategory: member of either closed category set
	_ = v.RegisterValidation("txcategory", func(fl validator.FieldLevel) bool {
		c := domain.Category(fl.Field().String())
		return domain.IsIncomeCategory(c) || domain.IsExpenseCategory(c)
	})
	// expcategory: member of the expense set only (budgets)
	_ = v.RegisterValidation("expcategory", func(fl validator.FieldLevel) bool {
		return domain.IsExpenseCategory(domain.Category(fl.Field().String()))
	})
}
