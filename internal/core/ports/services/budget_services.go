package services

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/dto"
)

// BudgetSvcFacade defines operations on budgets, including the matcher used
// by the ledger engine.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
	GetBudgetAlerts(ctx context.Context, userID string) ([]domain.BudgetAlert, error)

	// MatchBudget finds the unique active budget tracking category on date
	// for the user, or (nil, nil) when no budget tracks it.
	MatchBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error)
}
