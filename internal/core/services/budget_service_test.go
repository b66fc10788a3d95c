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

// MockBudgetRepository is a mock type for the BudgetRepository interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindMatchingBudget(ctx context.Context, userID string, category domain.Category, date time.Time) (*domain.Budget, error) {
	args := m.Called(ctx, userID, category, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string, filter portsrepo.BudgetFilter) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockBudgetRepository
	mockReporting *MockReportingRepository
	service       *services.BudgetService

	userID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.mockReporting = new(MockReportingRepository)
	suite.service = services.NewBudgetService(suite.mockRepo, suite.mockReporting)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_SeedsSpentFromExistingTransactions() {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	req := dto.CreateBudgetRequest{
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(400),
		StartDate: start,
		EndDate:   end,
	}

	suite.mockReporting.On("SumExpensesInWindow", ctx, suite.userID, domain.CategoryFood, start, end).Return(decimal.NewFromInt(125), nil)
	suite.mockRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == suite.userID &&
			b.Spent.Equal(decimal.NewFromInt(125)) &&
			b.Period == domain.PeriodMonthly &&
			b.AlertThreshold == domain.DefaultAlertThreshold &&
			b.IsActive
	})).Return(nil)

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), budget.Spent.Equal(decimal.NewFromInt(125)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsIncomeCategory() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(100),
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}

	_, err := suite.service.CreateBudget(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_RejectsInvertedWindow() {
	ctx := context.Background()
	start := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	req := dto.CreateBudgetRequest{
		Category:  domain.CategoryFood,
		Amount:    decimal.NewFromInt(100),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	}

	_, err := suite.service.CreateBudget(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_Unauthorized() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	other := &domain.Budget{BudgetID: budgetID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(other, nil)

	_, err := suite.service.GetBudgetByID(ctx, suite.userID, budgetID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_PatchesFields() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:       budgetID,
		UserID:         suite.userID,
		Category:       domain.CategoryFood,
		Amount:         decimal.NewFromInt(400),
		Spent:          decimal.NewFromInt(100),
		Period:         domain.PeriodMonthly,
		StartDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
		IsActive:       true,
	}
	newAmount := decimal.NewFromInt(600)
	newThreshold := 90
	req := dto.UpdateBudgetRequest{Amount: &newAmount, AlertThreshold: &newThreshold}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(existing, nil)
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		// Spent is a ledger-maintained cache; a budget edit must not touch it.
		return b.Amount.Equal(newAmount) && b.AlertThreshold == 90 && b.Spent.Equal(decimal.NewFromInt(100))
	})).Return(nil)

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budgetID, req)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_Unauthorized() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	other := &domain.Budget{BudgetID: budgetID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindBudgetByID", ctx, budgetID).Return(other, nil)

	err := suite.service.DeleteBudget(ctx, suite.userID, budgetID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetAlerts_FiltersToTriggered() {
	ctx := context.Background()
	budgets := []domain.Budget{
		{BudgetID: "calm", UserID: suite.userID, Category: domain.CategoryFood, Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(10), AlertThreshold: 80, IsActive: true},
		{BudgetID: "hot", UserID: suite.userID, Category: domain.CategoryTravel, Amount: decimal.NewFromInt(100), Spent: decimal.NewFromInt(130), AlertThreshold: 80, IsActive: true},
	}

	suite.mockRepo.On("ListBudgetsByUser", ctx, suite.userID, mock.MatchedBy(func(f portsrepo.BudgetFilter) bool {
		return f.IsActive != nil && *f.IsActive
	})).Return(budgets, nil)

	alerts, err := suite.service.GetBudgetAlerts(ctx, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), "hot", alerts[0].BudgetID)
	assert.True(suite.T(), alerts[0].IsExceeded)
	assert.Equal(suite.T(), "Budget exceeded for travel", alerts[0].Message)
}

func (suite *BudgetServiceTestSuite) TestMatchBudget_IncomeCategoryNeverMatches() {
	ctx := context.Background()

	budget, err := suite.service.MatchBudget(ctx, suite.userID, domain.CategorySalary, time.Now())

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), budget)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindMatchingBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestMatchBudget_DelegatesToRepository() {
	ctx := context.Background()
	date := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	match := &domain.Budget{BudgetID: uuid.NewString(), UserID: suite.userID, Category: domain.CategoryFood}

	suite.mockRepo.On("FindMatchingBudget", ctx, suite.userID, domain.CategoryFood, date).Return(match, nil)

	budget, err := suite.service.MatchBudget(ctx, suite.userID, domain.CategoryFood, date)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), match.BudgetID, budget.BudgetID)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
