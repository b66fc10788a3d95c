package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategoryTotal, []domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, from, to)
	var income, expenses []domain.CategoryTotal
	if args.Get(0) != nil {
		income = args.Get(0).([]domain.CategoryTotal)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.CategoryTotal)
	}
	return income, expenses, args.Error(2)
}

func (m *MockReportingRepository) SumExpensesInWindow(ctx context.Context, userID string, category domain.Category, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  *services.ReportingService

	userID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetTransactionSummary_DerivesTotalsFromGroupedRows() {
	ctx := context.Background()
	income := []domain.CategoryTotal{
		{Category: domain.CategorySalary, Total: decimal.NewFromInt(3000), Count: 1},
		{Category: domain.CategoryFreelance, Total: decimal.NewFromInt(500), Count: 2},
	}
	expenses := []domain.CategoryTotal{
		{Category: domain.CategoryHousing, Total: decimal.NewFromInt(1200), Count: 1},
		{Category: domain.CategoryFood, Total: decimal.NewFromInt(450), Count: 9},
	}

	suite.mockRepo.On("GetCategoryTotals", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).Return(income, expenses, nil)

	summary, err := suite.service.GetTransactionSummary(ctx, suite.userID, nil, nil)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), summary.TotalIncome.Equal(decimal.NewFromInt(3500)))
	assert.True(suite.T(), summary.TotalExpenses.Equal(decimal.NewFromInt(1650)))
	assert.True(suite.T(), summary.Balance.Equal(decimal.NewFromInt(1850)))
	assert.Len(suite.T(), summary.ExpensesByCategory, 2)
	assert.Len(suite.T(), summary.IncomeByCategory, 2)
}

func (suite *ReportingServiceTestSuite) TestGetTransactionSummary_EmptyLedger() {
	ctx := context.Background()

	suite.mockRepo.On("GetCategoryTotals", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.CategoryTotal{}, []domain.CategoryTotal{}, nil)

	summary, err := suite.service.GetTransactionSummary(ctx, suite.userID, nil, nil)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), summary.TotalIncome.IsZero())
	assert.True(suite.T(), summary.TotalExpenses.IsZero())
	assert.True(suite.T(), summary.Balance.IsZero())
	assert.Empty(suite.T(), summary.ExpensesByCategory)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
