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
	portssvc "github.com/fintrackr/personal_finance_app/internal/core/ports/services"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertEventPublisher publishes budget alert events after a commit. A nil
// publisher disables publishing.
type AlertEventPublisher interface {
	PublishBudgetAlert(ctx context.Context, userID string, alert domain.BudgetAlert) error
}

// TransactionService is the ledger consistency engine. Every mutation derives
// the balance delta for the owning account and the spend deltas for matched
// budgets, and hands the whole effect to the repository to commit atomically
// with the row write.
type TransactionService struct {
	TransactionRepository portsrepo.TransactionRepository
	AccountService        portssvc.AccountSvcFacade
	BudgetService         portssvc.BudgetSvcFacade
	alertPublisher        AlertEventPublisher
}

func NewTransactionService(repo portsrepo.TransactionRepository, accountSvc portssvc.AccountSvcFacade, budgetSvc portssvc.BudgetSvcFacade, publisher AlertEventPublisher) *TransactionService {
	return &TransactionService{
		TransactionRepository: repo,
		AccountService:        accountSvc,
		BudgetService:         budgetSvc,
		alertPublisher:        publisher,
	}
}

func validateTransactionFields(txnType domain.TransactionType, category domain.Category, amount decimal.Decimal, isRecurring bool, frequency *domain.RecurringFrequency) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidCategoryForType(txnType, category) {
		return fmt.Errorf("%w: category %q is not valid for type %q", apperrors.ErrValidation, category, txnType)
	}
	if frequency != nil && !domain.ValidRecurringFrequency(*frequency) {
		return fmt.Errorf("%w: unknown recurring frequency %q", apperrors.ErrValidation, *frequency)
	}
	if isRecurring && frequency == nil {
		return fmt.Errorf("%w: recurring transactions need a frequency", apperrors.ErrValidation)
	}
	return nil
}

// spendDeltaFor returns the budget matched by txn and the signed spend delta
// it would contribute, scaled by sign (+1 to apply, -1 to reverse). Income
// transactions never touch the spend ledger.
func (s *TransactionService) spendDeltaFor(ctx context.Context, txn domain.Transaction, sign decimal.Decimal) (*domain.Budget, []portsrepo.SpendDelta, error) {
	if txn.Type != domain.Expense {
		return nil, nil, nil
	}
	budget, err := s.BudgetService.MatchBudget(ctx, txn.UserID, txn.Category, txn.Date)
	if err != nil {
		return nil, nil, err
	}
	if budget == nil {
		return nil, nil, nil
	}
	return budget, []portsrepo.SpendDelta{{BudgetID: budget.BudgetID, Delta: txn.Amount.Mul(sign)}}, nil
}

// publishAlertIfTriggered publishes an alert when the budget's projected
// spent total is past its threshold or cap. Failures are logged, never
// returned; the user's write has already committed.
func (s *TransactionService) publishAlertIfTriggered(ctx context.Context, budget *domain.Budget, projectedSpent decimal.Decimal) {
	if s.alertPublisher == nil || budget == nil {
		return
	}
	post := *budget
	post.Spent = projectedSpent
	if !post.IsExceeded() && !post.IsAlertTriggered() {
		return
	}
	if err := s.alertPublisher.PublishBudgetAlert(ctx, budget.UserID, post.Alert()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to publish budget alert event",
			slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
	}
}

func logClampedBudgets(ctx context.Context, clamped []string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, budgetID := range clamped {
		logger.Warn("Budget spent total clamped at zero during ledger reversal; totals were already inconsistent",
			slog.String("budget_id", budgetID))
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateTransactionFields(req.Type, req.Category, req.Amount, req.IsRecurring, req.RecurringFrequency); err != nil {
		return nil, err
	}

	// Ownership and liveness checks come before any mutation.
	account, err := s.AccountService.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrNotFound, req.AccountID)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             userID,
		AccountID:          req.AccountID,
		Type:               req.Type,
		Category:           req.Category,
		Amount:             req.Amount,
		Date:               date,
		Description:        req.Description,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	budget, spendDeltas, err := s.spendDeltaFor(ctx, txn, decimal.NewFromInt(1))
	if err != nil {
		logger.Error("Failed to match budget for transaction", slog.String("error", err.Error()))
		return nil, err
	}

	effect := portsrepo.LedgerEffect{
		AccountID:    txn.AccountID,
		BalanceDelta: txn.EffectOnBalance(),
		SpendDeltas:  spendDeltas,
	}

	if err := s.TransactionRepository.SaveTransaction(ctx, txn, effect); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("category", string(txn.Category)))

	if budget != nil {
		s.publishAlertIfTriggered(ctx, budget, budget.Spent.Add(txn.Amount))
	}
	return &txn, nil
}

// getOwnedTransaction loads the transaction and rejects cross-owner access.
func (s *TransactionService) getOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.TransactionRepository.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}
	return txn, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	filter := portsrepo.TransactionFilter{
		Type:      params.Type,
		Category:  params.Category,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	txns, total, err := s.TransactionRepository.ListTransactions(ctx, userID, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &dto.ListTransactionsResponse{
		Count:        len(txns),
		Total:        total,
		Page:         page,
		Pages:        pages,
		Transactions: dto.ToTransactionResponses(txns),
	}, nil
}

// UpdateTransaction edits a transaction and keeps both ledgers consistent by
// reversing the old effect and applying the new one in a single commit. The
// account and owner references are immutable.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	oldTxn, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	newTxn := *oldTxn
	if req.Type != nil {
		newTxn.Type = *req.Type
	}
	if req.Category != nil {
		newTxn.Category = *req.Category
	}
	if req.Amount != nil {
		newTxn.Amount = *req.Amount
	}
	if req.Date != nil {
		newTxn.Date = *req.Date
	}
	if req.Description != nil {
		newTxn.Description = *req.Description
	}
	if req.IsRecurring != nil {
		newTxn.IsRecurring = *req.IsRecurring
	}
	if req.RecurringFrequency != nil {
		newTxn.RecurringFrequency = req.RecurringFrequency
	}
	if err := validateTransactionFields(newTxn.Type, newTxn.Category, newTxn.Amount, newTxn.IsRecurring, newTxn.RecurringFrequency); err != nil {
		return nil, err
	}
	newTxn.LastUpdatedAt = time.Now()
	newTxn.LastUpdatedBy = userID

	// Reverse the old spend contribution and apply the new one. The budgets
	// are matched independently because category or date edits can move the
	// transaction between budgets.
	minusOne := decimal.NewFromInt(-1)
	_, reverseDeltas, err := s.spendDeltaFor(ctx, *oldTxn, minusOne)
	if err != nil {
		return nil, err
	}
	newBudget, applyDeltas, err := s.spendDeltaFor(ctx, newTxn, decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}
	spendDeltas := mergeSpendDeltas(append(reverseDeltas, applyDeltas...))

	effect := portsrepo.LedgerEffect{
		AccountID:    oldTxn.AccountID,
		BalanceDelta: newTxn.EffectOnBalance().Sub(oldTxn.EffectOnBalance()),
		SpendDeltas:  spendDeltas,
	}

	clamped, err := s.TransactionRepository.UpdateTransaction(ctx, newTxn, effect)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}
	logClampedBudgets(ctx, clamped)

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))

	if newBudget != nil {
		projected := newBudget.Spent.Add(newTxn.Amount)
		// When the edit stays within one budget, the reversal lowers the
		// projection before the new amount lands on it.
		for _, d := range reverseDeltas {
			if d.BudgetID == newBudget.BudgetID {
				projected = projected.Add(d.Delta)
			}
		}
		s.publishAlertIfTriggered(ctx, newBudget, projected)
	}
	return &newTxn, nil
}

// DeleteTransaction removes a transaction and reverses its full ledger
// effect, both the account balance and any matched budget's spent total.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	_, spendDeltas, err := s.spendDeltaFor(ctx, *txn, decimal.NewFromInt(-1))
	if err != nil {
		return err
	}

	effect := portsrepo.LedgerEffect{
		AccountID:    txn.AccountID,
		BalanceDelta: txn.EffectOnBalance().Neg(),
		SpendDeltas:  spendDeltas,
	}

	clamped, err := s.TransactionRepository.DeleteTransaction(ctx, transactionID, effect)
	if err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}
	logClampedBudgets(ctx, clamped)

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// mergeSpendDeltas combines deltas that target the same budget and drops the
// ones that cancel out, so an edit within one budget issues one increment.
func mergeSpendDeltas(deltas []portsrepo.SpendDelta) []portsrepo.SpendDelta {
	if len(deltas) < 2 {
		return deltas
	}
	byBudget := make(map[string]decimal.Decimal, len(deltas))
	order := make([]string, 0, len(deltas))
	for _, d := range deltas {
		if _, seen := byBudget[d.BudgetID]; !seen {
			order = append(order, d.BudgetID)
		}
		byBudget[d.BudgetID] = byBudget[d.BudgetID].Add(d.Delta)
	}
	merged := make([]portsrepo.SpendDelta, 0, len(order))
	for _, id := range order {
		if byBudget[id].IsZero() {
			continue
		}
		merged = append(merged, portsrepo.SpendDelta{BudgetID: id, Delta: byBudget[id]})
	}
	return merged
}
