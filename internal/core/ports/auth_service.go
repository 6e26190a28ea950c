package ports

import (
	"context"

	"github.com/petconnect/activities-api/internal/core/domain"
)

// RegisterInput carries the registration form fields. SecretConfirm must
// match Secret; the service validates both before hashing.
type RegisterInput struct {
	Name          string
	Surname       string
	Email         string
	Secret        string
	SecretConfirm string
}

// AuthService implements the credential operations: account registration
// with hashed secrets and credential verification with token issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed session token and the authenticated account.
	Login(ctx context.Context, email, secret string) (string, *domain.Account, error)
}
