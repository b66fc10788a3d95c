package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
)

// BudgetFilter narrows a budget listing.
type BudgetFilter struct {
	IsActive *bool
	Category *domain.Category
}

// BudgetRepository defines persistence operations for budgets.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	// FindMatchingBudget selects the user's active budget whose category
	// equals category and whose [startDate, endDate] window contains date,
	// inclusive. When several active budgets overlap, the most recently
	// created one wins. A miss returns (nil, nil); it is not an error.
	FindMatchingBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error)
	ListBudgetsByUser(ctx context.Context, userID string, filter BudgetFilter) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
}
