package ports

import (
	"context"

	"github.com/petconnect/activities-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new account. The unique email index is the conflict
	// check: a duplicate key surfaces as domain.ErrEmailTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}
