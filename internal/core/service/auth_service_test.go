package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

type stubUserRepo struct {
	accounts []*domain.Account
	nextID   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneAccount(account)
	stored.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts = append(r.accounts, stored)
	return cloneAccount(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "secret", 2*time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:          "Ana",
		Surname:       "Lopez",
		Email:         "ana@x.com",
		Secret:        "secret1",
		SecretConfirm: "secret1",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	account, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected account id to be assigned")
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, account.Role)
	}
	if account.PasswordHash == "secret1" {
		t.Fatalf("expected secret to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify against secret: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	input := ports.RegisterInput{
		Name:          "A",
		Surname:       "",
		Email:         "not-an-email",
		Secret:        "short",
		SecretConfirm: "other",
	}

	_, err := svc.Register(context.Background(), input)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"nombre", "apellidos", "email", "clave", "clave2"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected field %q in validation detail, got %v", field, verr.Fields)
		}
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("no account should be created on validation failure")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Other fields differ; only the email collides.
	input := validRegisterInput()
	input.Name = "Otra"
	input.Secret = "different1"
	input.SecretConfirm = "different1"

	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(repo.accounts))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	before := time.Now()
	token, account, err := svc.Login(context.Background(), "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account.ID != created.ID {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != created.ID {
		t.Fatalf("expected id claim %q, got %v", created.ID, claims["id"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role claim %q, got %v", domain.RoleUser, claims["role"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("reading exp claim: %v", err)
	}
	want := before.Add(2 * time.Hour)
	if diff := exp.Time.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected expiry ~2h from issuance, got %v (diff %v)", exp.Time, diff)
	}
}

func TestAuthService_Login_WrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), validRegisterInput())
	if _, _, err := svc.Login(context.Background(), "ana@x.com", "wrong1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_AccountNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "secret1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthService_Login_MalformedInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _, err := svc.Login(context.Background(), "not-an-email", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Fatalf("expected email in validation detail, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["clave"]; !ok {
		t.Fatalf("expected clave in validation detail, got %v", verr.Fields)
	}
}
