package repositories

import (
	"context"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
