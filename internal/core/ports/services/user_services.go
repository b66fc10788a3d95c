package services

import (
	"context"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
	"github.com/fintrackr/personal_finance_app/internal/dto"
)

// UserSvcFacade defines the user-facing operations of the user service.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	// AuthenticateUser verifies the credentials and returns the user on
	// success. Unknown email and wrong password are indistinguishable to
	// the caller (both ErrUnauthorized).
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
