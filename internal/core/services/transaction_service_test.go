package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/fintrackr/personal_finance_app/internal/core/services"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) error {
	args := m.Called(ctx, txn, effect)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, effect portsrepo.LedgerEffect) ([]string, error) {
	args := m.Called(ctx, txn, effect)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, effect portsrepo.LedgerEffect) ([]string, error) {
	args := m.Called(ctx, transactionID, effect)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockAccountSvc is a mock type for the AccountSvcFacade interface
type MockAccountSvc struct {
	mock.Mock
}

func (m *MockAccountSvc) CreateAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountSvc) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountSvc) ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockAccountSvc) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountSvc) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

func (m *MockAccountSvc) GetTotalBalance(ctx context.Context, userID string) (*dto.TotalBalanceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TotalBalanceResponse), args.Error(1)
}

func (m *MockAccountSvc) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

// MockBudgetSvc is a mock type for the BudgetSvcFacade interface
type MockBudgetSvc struct {
	mock.Mock
}

func (m *MockBudgetSvc) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetSvc) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetSvc) ListBudgets(ctx context.Context, userID string, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetSvc) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetSvc) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}

func (m *MockBudgetSvc) GetBudgetAlerts(ctx context.Context, userID string) ([]domain.BudgetAlert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAlert), args.Error(1)
}

func (m *MockBudgetSvc) MatchBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error) {
	args := m.Called(ctx, userID, category, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

// MockAlertPublisher is a mock type for the AlertEventPublisher interface
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishBudgetAlert(ctx context.Context, userID string, alert domain.BudgetAlert) error {
	args := m.Called(ctx, userID, alert)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockTransactionRepository
	mockAccounts  *MockAccountSvc
	mockBudgets   *MockBudgetSvc
	mockPublisher *MockAlertPublisher
	service       *services.TransactionService

	userID    string
	accountID string
	account   *domain.BankAccount
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockAccounts = new(MockAccountSvc)
	suite.mockBudgets = new(MockBudgetSvc)
	suite.mockPublisher = new(MockAlertPublisher)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockAccounts, suite.mockBudgets, suite.mockPublisher)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.account = &domain.BankAccount{
		AccountID: suite.accountID,
		UserID:    suite.userID,
		Balance:   decimal.NewFromInt(1000),
		IsActive:  true,
	}
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeIncreasesBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Income,
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(500),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account, nil)
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.AccountID == suite.accountID &&
			e.BalanceDelta.Equal(decimal.NewFromInt(500)) &&
			len(e.SpendDeltas) == 0
	})).Return(nil)

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	assert.Equal(suite.T(), suite.userID, txn.UserID)
	// Income never touches the spend ledger, so no budget lookup happens.
	suite.mockBudgets.AssertNotCalled(suite.T(), "MatchBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseWithBudgetMatch() {
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	budget := &domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         suite.userID,
		Category:       domain.CategoryFood,
		Amount:         decimal.NewFromInt(300),
		Spent:          decimal.NewFromInt(100),
		AlertThreshold: 80,
		IsActive:       true,
	}
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(50),
		Date:      &date,
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryFood, date).Return(budget, nil)
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.BalanceDelta.Equal(decimal.NewFromInt(-50)) &&
			len(e.SpendDeltas) == 1 &&
			e.SpendDeltas[0].BudgetID == budget.BudgetID &&
			e.SpendDeltas[0].Delta.Equal(decimal.NewFromInt(50))
	})).Return(nil)

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	// Projected spent is 150/300 (50%), below the 80% threshold.
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishBudgetAlert", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseNoMatchingBudget() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryTravel,
		Amount:    decimal.NewFromInt(75),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryTravel, mock.AnythingOfType("time.Time")).Return(nil, nil)
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.BalanceDelta.Equal(decimal.NewFromInt(-75)) && len(e.SpendDeltas) == 0
	})).Return(nil)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AlertPublishedWhenThresholdCrossed() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         suite.userID,
		Category:       domain.CategoryShopping,
		Amount:         decimal.NewFromInt(100),
		Spent:          decimal.NewFromInt(50),
		AlertThreshold: 80,
		IsActive:       true,
	}
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryShopping,
		Amount:    decimal.NewFromInt(40),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(suite.account, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryShopping, mock.AnythingOfType("time.Time")).Return(budget, nil)
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("repositories.LedgerEffect")).Return(nil)
	// Projected spent 90/100 crosses the 80% threshold.
	suite.mockPublisher.On("PublishBudgetAlert", ctx, suite.userID, mock.MatchedBy(func(a domain.BudgetAlert) bool {
		return a.BudgetID == budget.BudgetID && a.Spent.Equal(decimal.NewFromInt(90)) && !a.IsExceeded
	})).Return(nil)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Income,
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(10),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OtherUsersAccount() {
	ctx := context.Background()
	otherAccount := &domain.BankAccount{
		AccountID: suite.accountID,
		UserID:    uuid.NewString(),
		IsActive:  true,
	}
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(10),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(otherAccount, nil)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	// Rejected before any mutation or budget lookup.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBudgets.AssertNotCalled(suite.T(), "MatchBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	inactive := &domain.BankAccount{
		AccountID: suite.accountID,
		UserID:    suite.userID,
		IsActive:  false,
	}
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(10),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.accountID).Return(inactive, nil)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CategoryTypeMismatch() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Income,
		Category:  domain.CategoryFood, // expense category on an income transaction
		Amount:    decimal.NewFromInt(10),
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID: suite.accountID,
		Type:      domain.Expense,
		Category:  domain.CategoryFood,
		Amount:    decimal.Zero,
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateTransaction ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeSameBudget() {
	ctx := context.Background()
	txnID := uuid.NewString()
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	budget := &domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         suite.userID,
		Category:       domain.CategoryFood,
		Amount:         decimal.NewFromInt(500),
		Spent:          decimal.NewFromInt(200),
		AlertThreshold: 80,
	}
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(100),
		Date:          date,
	}
	newAmount := decimal.NewFromInt(150)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil)
	// The old and new versions match the same budget.
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryFood, date).Return(budget, nil).Twice()
	// Net balance delta: (-150) - (-100) = -50. Merged spend delta: -100 + 150 = +50.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.AccountID == suite.accountID &&
			e.BalanceDelta.Equal(decimal.NewFromInt(-50)) &&
			len(e.SpendDeltas) == 1 &&
			e.SpendDeltas[0].BudgetID == budget.BudgetID &&
			e.SpendDeltas[0].Delta.Equal(decimal.NewFromInt(50))
	})).Return(nil, nil)

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_CategoryChangeMovesBudgets() {
	ctx := context.Background()
	txnID := uuid.NewString()
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	foodBudget := &domain.Budget{BudgetID: uuid.NewString(), UserID: suite.userID, Category: domain.CategoryFood, Amount: decimal.NewFromInt(500)}
	travelBudget := &domain.Budget{BudgetID: uuid.NewString(), UserID: suite.userID, Category: domain.CategoryTravel, Amount: decimal.NewFromInt(400)}
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(80),
		Date:          date,
	}
	newCategory := domain.CategoryTravel
	req := dto.UpdateTransactionRequest{Category: &newCategory}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryFood, date).Return(foodBudget, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryTravel, date).Return(travelBudget, nil)
	// Same amount and type, so the account balance is untouched; the spend
	// moves between the two budgets.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		if !e.BalanceDelta.IsZero() || len(e.SpendDeltas) != 2 {
			return false
		}
		byID := map[string]decimal.Decimal{}
		for _, d := range e.SpendDeltas {
			byID[d.BudgetID] = d.Delta
		}
		return byID[foodBudget.BudgetID].Equal(decimal.NewFromInt(-80)) &&
			byID[travelBudget.BudgetID].Equal(decimal.NewFromInt(80))
	})).Return(nil, nil)

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, req)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoopAmountProducesNoSpendDeltas() {
	ctx := context.Background()
	txnID := uuid.NewString()
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	budget := &domain.Budget{BudgetID: uuid.NewString(), UserID: suite.userID, Category: domain.CategoryFood, Amount: decimal.NewFromInt(500)}
	oldTxn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(60),
		Date:          date,
	}
	newDescription := "groceries"
	req := dto.UpdateTransactionRequest{Description: &newDescription}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(oldTxn, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryFood, date).Return(budget, nil).Twice()
	// Reversal and reapplication cancel out entirely.
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.BalanceDelta.IsZero() && len(e.SpendDeltas) == 0
	})).Return(nil, nil)

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "groceries", updated.Description)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Unauthorized() {
	ctx := context.Background()
	txnID := uuid.NewString()
	otherTxn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        uuid.NewString(),
		AccountID:     suite.accountID,
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		Amount:        decimal.NewFromInt(60),
	}
	newAmount := decimal.NewFromInt(10)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(otherTxn, nil)

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteTransaction ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesBothLedgers() {
	ctx := context.Background()
	txnID := uuid.NewString()
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	budget := &domain.Budget{BudgetID: uuid.NewString(), UserID: suite.userID, Category: domain.CategoryUtilities, Amount: decimal.NewFromInt(200)}
	txn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Type:          domain.Expense,
		Category:      domain.CategoryUtilities,
		Amount:        decimal.NewFromInt(120),
		Date:          date,
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(txn, nil)
	suite.mockBudgets.On("MatchBudget", ctx, suite.userID, domain.CategoryUtilities, date).Return(budget, nil)
	// Deleting an expense restores the balance and lowers the budget's spent.
	suite.mockRepo.On("DeleteTransaction", ctx, txnID, mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.BalanceDelta.Equal(decimal.NewFromInt(120)) &&
			len(e.SpendDeltas) == 1 &&
			e.SpendDeltas[0].BudgetID == budget.BudgetID &&
			e.SpendDeltas[0].Delta.Equal(decimal.NewFromInt(-120))
	})).Return(nil, nil)

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_IncomeReversesBalanceOnly() {
	ctx := context.Background()
	txnID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Type:          domain.Income,
		Category:      domain.CategorySalary,
		Amount:        decimal.NewFromInt(900),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(txn, nil)
	suite.mockRepo.On("DeleteTransaction", ctx, txnID, mock.MatchedBy(func(e portsrepo.LedgerEffect) bool {
		return e.BalanceDelta.Equal(decimal.NewFromInt(-900)) && len(e.SpendDeltas) == 0
	})).Return(nil, nil)

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	assert.NoError(suite.T(), err)
	suite.mockBudgets.AssertNotCalled(suite.T(), "MatchBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(nil, apperrors.ErrNotFound)

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- ListTransactions ---

func (suite *TransactionServiceTestSuite) TestListTransactions_Pagination() {
	ctx := context.Background()
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), UserID: suite.userID, Amount: decimal.NewFromInt(5)},
		{TransactionID: uuid.NewString(), UserID: suite.userID, Amount: decimal.NewFromInt(7)},
	}

	suite.mockRepo.On("ListTransactions", ctx, suite.userID, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Limit == 10 && f.Offset == 20
	})).Return(txns, int64(42), nil)

	res, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{Limit: 10, Page: 3})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, res.Count)
	assert.Equal(suite.T(), int64(42), res.Total)
	assert.Equal(suite.T(), 3, res.Page)
	assert.Equal(suite.T(), int64(5), res.Pages)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
