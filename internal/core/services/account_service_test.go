package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/core/services"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SumActiveBalances(ctx context.Context, userID string) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

// fakeEncryptor is a reversible stand-in for the AES field encryptor.
type fakeEncryptor struct{}

func (fakeEncryptor) EncryptString(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (fakeEncryptor) DecryptString(ciphertext string) (string, error) {
	if len(ciphertext) < 4 || ciphertext[:4] != "enc:" {
		return "", fmt.Errorf("not a ciphertext")
	}
	return ciphertext[4:], nil
}

// failingEncryptor simulates a bad key.
type failingEncryptor struct{}

func (failingEncryptor) EncryptString(string) (string, error) {
	return "", fmt.Errorf("cipher init failed")
}

func (failingEncryptor) DecryptString(string) (string, error) {
	return "", fmt.Errorf("cipher init failed")
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService

	userID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, fakeEncryptor{})
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_EncryptsNumberAndMasksResponse() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		AccountName:   "Everyday",
		BankName:      "First National",
		AccountNumber: "1234567890123456",
		Balance:       decimal.NewFromInt(100),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		// The stored number must be ciphertext, never the plaintext.
		return a.AccountNumber == "enc:1234567890123456" &&
			a.UserID == suite.userID &&
			a.AccountType == domain.Checking &&
			a.CurrencyCode == "USD" &&
			a.IsActive
	})).Return(nil)

	account, err := suite.service.CreateAccount(ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "****3456", account.AccountNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EncryptionFailure() {
	ctx := context.Background()
	service := services.NewAccountService(suite.mockRepo, failingEncryptor{})
	req := dto.CreateBankAccountRequest{
		AccountName:   "Everyday",
		BankName:      "First National",
		AccountNumber: "1234567890123456",
	}

	_, err := service.CreateAccount(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEncryptionConfig)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NoEncryptorConfigured() {
	ctx := context.Background()
	service := services.NewAccountService(suite.mockRepo, nil)
	req := dto.CreateBankAccountRequest{
		AccountName:   "Everyday",
		BankName:      "First National",
		AccountNumber: "1234567890123456",
	}

	_, err := service.CreateAccount(ctx, suite.userID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEncryptionConfig)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_DecryptsAndMasks() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.BankAccount{
		AccountID:     accountID,
		UserID:        suite.userID,
		AccountNumber: "enc:9876543210",
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil)

	account, err := suite.service.GetAccountByID(ctx, suite.userID, accountID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "****3210", account.AccountNumber)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Unauthorized() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.BankAccount{
		AccountID:     accountID,
		UserID:        uuid.NewString(),
		AccountNumber: "enc:9876543210",
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil)

	_, err := suite.service.GetAccountByID(ctx, suite.userID, accountID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_UndecryptableCiphertext() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.BankAccount{
		AccountID:     accountID,
		UserID:        suite.userID,
		AccountNumber: "garbage",
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil)

	_, err := suite.service.GetAccountByID(ctx, suite.userID, accountID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEncryptionConfig)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ReencryptsNewNumber() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.BankAccount{
		AccountID:     accountID,
		UserID:        suite.userID,
		AccountName:   "Everyday",
		AccountNumber: "enc:1111222233334444",
		AccountType:   domain.Checking,
		IsActive:      true,
	}
	newNumber := "5555666677778888"
	req := dto.UpdateBankAccountRequest{AccountNumber: &newNumber}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil)
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.AccountNumber == "enc:5555666677778888"
	})).Return(nil)

	account, err := suite.service.UpdateAccount(ctx, suite.userID, accountID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "****8888", account.AccountNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Unauthorized() {
	ctx := context.Background()
	accountID := uuid.NewString()
	stored := &domain.BankAccount{AccountID: accountID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(stored, nil)

	err := suite.service.DeactivateAccount(ctx, suite.userID, accountID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetTotalBalance() {
	ctx := context.Background()

	suite.mockRepo.On("SumActiveBalances", ctx, suite.userID).Return(decimal.NewFromInt(2500), int64(3), nil)

	res, err := suite.service.GetTotalBalance(ctx, suite.userID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), res.TotalBalance.Equal(decimal.NewFromInt(2500)))
	assert.Equal(suite.T(), int64(3), res.AccountCount)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
