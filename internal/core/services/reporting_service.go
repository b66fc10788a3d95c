package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type ReportingService struct {
	ReportingRepository portsrepo.ReportingRepository
}

func NewReportingService(repo portsrepo.ReportingRepository) *ReportingService {
	return &ReportingService{ReportingRepository: repo}
}

// GetTransactionSummary aggregates the user's transactions over the optional
// [from, to] range. Overall totals are derived from the grouped rows; no
// second query pass is made.
func (s *ReportingService) GetTransactionSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.TransactionSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, expenses, err := s.ReportingRepository.GetCategoryTotals(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to aggregate category totals", slog.String("error", err.Error()))
		return nil, err
	}

	totalIncome := decimal.Zero
	for _, ct := range income {
		totalIncome = totalIncome.Add(ct.Total)
	}
	totalExpenses := decimal.Zero
	for _, ct := range expenses {
		totalExpenses = totalExpenses.Add(ct.Total)
	}

	return &domain.TransactionSummary{
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		Balance:            totalIncome.Sub(totalExpenses),
		ExpensesByCategory: expenses,
		IncomeByCategory:   income,
	}, nil
}
