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
	"github.com/fintrackr/personal_finance_app/internal/utils"
	"github.com/google/uuid"
)

type UserService struct {
	UserRepository portsrepo.UserRepository
}

func NewUserService(repo portsrepo.UserRepository) *UserService {
	return &UserService{UserRepository: repo}
}

func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.UserRepository.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user in repository", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("User registered successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies credentials. Unknown email and wrong password
// both surface as ErrUnauthorized so callers cannot probe for accounts.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.UserRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to find user by email", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch on login attempt", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	user, err := s.UserRepository.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user by ID in repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}
