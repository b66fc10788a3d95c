package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackr/personal_finance_app/internal/apperrors"
	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	portsrepo "github.com/fintrackr/personal_finance_app/internal/core/ports/repositories"
	"github.com/fintrackr/personal_finance_app/internal/dto"
	"github.com/fintrackr/personal_finance_app/internal/middleware"
	"github.com/google/uuid"
)

// FieldEncryptor encrypts sensitive account fields before they reach storage.
type FieldEncryptor interface {
	EncryptString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

type AccountService struct {
	AccountRepository portsrepo.AccountRepository
	encryptor         FieldEncryptor
}

func NewAccountService(repo portsrepo.AccountRepository, encryptor FieldEncryptor) *AccountService {
	return &AccountService{AccountRepository: repo, encryptor: encryptor}
}

// maskAccountNumber hides all but the last four digits.
func maskAccountNumber(plain string) string {
	if len(plain) <= 4 {
		return "****" + plain
	}
	return "****" + plain[len(plain)-4:]
}

func (s *AccountService) encryptAccountNumber(plain string) (string, error) {
	if s.encryptor == nil {
		return "", fmt.Errorf("%w: no encryptor configured", apperrors.ErrEncryptionConfig)
	}
	ciphertext, err := s.encryptor.EncryptString(plain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrEncryptionConfig, err)
	}
	return ciphertext, nil
}

func (s *AccountService) decryptAndMask(account *domain.BankAccount) error {
	if s.encryptor == nil {
		return fmt.Errorf("%w: no encryptor configured", apperrors.ErrEncryptionConfig)
	}
	plain, err := s.encryptor.DecryptString(account.AccountNumber)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEncryptionConfig, err)
	}
	account.AccountNumber = maskAccountNumber(plain)
	return nil
}

func (s *AccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := req.AccountType
	if accountType == "" {
		accountType = domain.Checking
	}
	if !domain.ValidBankAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	if currencyCode == "" {
		currencyCode = "USD"
	}

	encryptedNumber, err := s.encryptAccountNumber(req.AccountNumber)
	if err != nil {
		logger.Error("Failed to encrypt account number", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	account := domain.BankAccount{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		AccountName:   req.AccountName,
		BankName:      req.BankName,
		AccountNumber: encryptedNumber,
		AccountType:   accountType,
		Balance:       req.Balance,
		CurrencyCode:  currencyCode,
		IsActive:      true,
		LastSyncedAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.AccountRepository.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	account.AccountNumber = maskAccountNumber(req.AccountNumber)
	return &account, nil
}

// getOwnedAccount loads the account and rejects cross-owner access.
func (s *AccountService) getOwnedAccount(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	account, err := s.AccountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}
	return account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	if err := s.decryptAndMask(account); err != nil {
		logger.Error("Failed to decrypt account number", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.AccountRepository.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for i := range accounts {
		if err := s.decryptAndMask(&accounts[i]); err != nil {
			logger.Error("Failed to decrypt account number", slog.String("error", err.Error()), slog.String("account_id", accounts[i].AccountID))
			return nil, err
		}
	}
	return accounts, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	plainNumber := ""
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		encrypted, err := s.encryptAccountNumber(*req.AccountNumber)
		if err != nil {
			logger.Error("Failed to encrypt account number", slog.String("error", err.Error()))
			return nil, err
		}
		account.AccountNumber = encrypted
		plainNumber = *req.AccountNumber
	}
	if req.AccountType != nil {
		if !domain.ValidBankAccountType(*req.AccountType) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.AccountRepository.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	if plainNumber != "" {
		account.AccountNumber = maskAccountNumber(plainNumber)
		return account, nil
	}
	if err := s.decryptAndMask(account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks the account inactive. Rows are never deleted; the
// transaction history must stay attributable.
func (s *AccountService) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.getOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.AccountRepository.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *AccountService) GetTotalBalance(ctx context.Context, userID string) (*dto.TotalBalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	total, count, err := s.AccountRepository.SumActiveBalances(ctx, userID)
	if err != nil {
		logger.Error("Failed to sum account balances", slog.String("error", err.Error()))
		return nil, err
	}
	return &dto.TotalBalanceResponse{TotalBalance: total, AccountCount: count}, nil
}

// FindAccountByID is the raw lookup used by the ledger engine: no ownership
// check, no decryption.
func (s *AccountService) FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	return s.AccountRepository.FindAccountByID(ctx, accountID)
}
