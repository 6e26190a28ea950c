package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

// validate backs the field-level checks shared by the services.
var validate = validator.New()

const defaultTokenTTL = 2 * time.Hour

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register hashes the secret and creates the account with role "user".
// Email uniqueness is enforced by the repository's unique index, not by a
// separate existence check, so concurrent registrations cannot race.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		Role:         domain.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", created.ID).Msg("account registered")
	return created, nil
}

// Login verifies the credentials and issues a session token. The stored
// hash is compared through bcrypt, never by plain equality.
func (s *AuthService) Login(ctx context.Context, email, secret string) (string, *domain.Account, error) {
	verr := domain.NewValidationError()
	if validate.Var(email, "required,email") != nil {
		verr.Add("email", "Email inválido")
	}
	if secret == "" {
		verr.Add("clave", "La clave es obligatoria")
	}
	if !verr.Empty() {
		return "", nil, verr
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(secret)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return token, account, nil
}

func (s *AuthService) issueToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"id":   account.ID,
		"role": account.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateRegister(in ports.RegisterInput) error {
	verr := domain.NewValidationError()
	if len(in.Name) < 2 {
		verr.Add("nombre", "Nombre demasiado corto")
	}
	if len(in.Surname) < 2 {
		verr.Add("apellidos", "Apellidos obligatorios")
	}
	if validate.Var(in.Email, "required,email") != nil {
		verr.Add("email", "Email inválido")
	}
	if len(in.Secret) < 6 {
		verr.Add("clave", "La clave debe tener al menos 6 caracteres")
	}
	if in.Secret != in.SecretConfirm {
		verr.Add("clave2", "Las contraseñas no coinciden")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
