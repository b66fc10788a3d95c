package services

import (
	"context"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
)

// ReportingSvcFacade exposes aggregate statistics over a user's transactions.
type ReportingSvcFacade interface {
	GetTransactionSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.TransactionSummary, error)
}
