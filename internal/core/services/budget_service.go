package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/google/uuid"
)

type BudgetService struct {
	BudgetRepository    portsrepo.BudgetRepository
	ReportingRepository portsrepo.ReportingRepository
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepository, reportingRepo portsrepo.ReportingRepository) *BudgetService {
	return &BudgetService{BudgetRepository: budgetRepo, ReportingRepository: reportingRepo}
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsExpenseCategory(req.Category) {
		return nil, fmt.Errorf("%w: budgets track expense categories only, got %q", apperrors.ErrValidation, req.Category)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}
	period := req.Period
	if period == "" {
		period = domain.PeriodMonthly
	}
	if !domain.ValidBudgetPeriod(period) {
		return nil, fmt.Errorf("%w: unknown budget period %q", apperrors.ErrValidation, period)
	}
	alertThreshold := domain.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		alertThreshold = *req.AlertThreshold
	}

	// Seed spent from expense transactions already inside the window, so a
	// budget created mid-period starts consistent with the ledger.
	spent, err := s.ReportingRepository.SumExpensesInWindow(ctx, userID, req.Category, req.StartDate, req.EndDate)
	if err != nil {
		logger.Error("Failed to seed budget spent total", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         userID,
		Category:       req.Category,
		Amount:         req.Amount,
		Spent:          spent,
		Period:         period,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AlertThreshold: alertThreshold,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.BudgetRepository.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	logger.Info("Budget created successfully", slog.String("budget_id", budget.BudgetID), slog.String("category", string(budget.Category)))
	return &budget, nil
}

// getOwnedBudget loads the budget and rejects cross-owner access.
func (s *BudgetService) getOwnedBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.BudgetRepository.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}
	return budget, nil
}

func (s *BudgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Error("Failed to find budget by ID in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	return budget, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	filter := portsrepo.BudgetFilter{IsActive: params.IsActive, Category: params.Category}
	budgets, err := s.BudgetRepository.ListBudgetsByUser(ctx, userID, filter)
	if err != nil {
		logger.Error("Failed to list budgets from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		if !domain.ValidBudgetPeriod(*req.Period) {
			return nil, fmt.Errorf("%w: unknown budget period %q", apperrors.ErrValidation, *req.Period)
		}
		budget.Period = *req.Period
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}
	if budget.EndDate.Before(budget.StartDate) {
		return nil, fmt.Errorf("%w: end date must not precede start date", apperrors.ErrValidation)
	}
	if req.AlertThreshold != nil {
		if *req.AlertThreshold < 0 || *req.AlertThreshold > 100 {
			return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", apperrors.ErrValidation)
		}
		budget.AlertThreshold = *req.AlertThreshold
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.BudgetRepository.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget in repository", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	logger.Info("Budget updated successfully", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.getOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.BudgetRepository.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return err
	}
	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// GetBudgetAlerts returns alerts for the user's active budgets that are
// exceeded or past their alert threshold.
func (s *BudgetService) GetBudgetAlerts(ctx context.Context, userID string) ([]domain.BudgetAlert, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	active := true
	budgets, err := s.BudgetRepository.ListBudgetsByUser(ctx, userID, portsrepo.BudgetFilter{IsActive: &active})
	if err != nil {
		logger.Error("Failed to list budgets for alerts", slog.String("error", err.Error()))
		return nil, err
	}
	return domain.BudgetAlerts(budgets), nil
}

// MatchBudget finds the unique active budget covering (category, date) for
// the user. Income categories never match; a miss returns (nil, nil).
func (s *BudgetService) MatchBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error) {
	if !domain.IsExpenseCategory(category) {
		return nil, nil
	}
	return s.BudgetRepository.FindMatchingBudget(ctx, userID, category, date)
}
