package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
	"github.com/durgamdileep/product-auth-api/internal/infrastructure/crypto"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = user.Username
	}
	r.users[clone.Username] = &clone
	return &clone, nil
}

func newTestAuthService(t *testing.T, withTokens bool) (*AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := crypto.NewBcryptHasher(4) // min cost, tests only

	var tokens ports.TokenService
	if withTokens {
		tokens = newTestTokenService(t, "test-secret", time.Hour)
	}
	return NewAuthService(repo, hasher, tokens, zerolog.Nop()), repo
}

func signupUser(t *testing.T, svc *AuthService, username, password, roles string) {
	t.Helper()
	msg, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Roles:    roles,
	})
	if err != nil {
		t.Fatalf("Signup(%s): %v", username, err)
	}
	if msg != username+" successfully registered" {
		t.Fatalf("unexpected signup message: %q", msg)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, repo := newTestAuthService(t, false)
	signupUser(t, svc, "alice", "s3cret99", " PRODUCT_VIEW , ROLE_CUSTOMER_SERVICE ")

	if repo.users["alice"].PasswordHash == "s3cret99" {
		t.Fatalf("password stored in plaintext")
	}

	p, err := svc.Authenticate(context.Background(), "alice", "s3cret99")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Username != "alice" {
		t.Fatalf("unexpected username: %q", p.Username)
	}

	// Authorities come from the roles column, split on comma and trimmed.
	got := p.Authorities()
	if len(got) != 2 || got[0] != "PRODUCT_VIEW" || got[1] != "ROLE_CUSTOMER_SERVICE" {
		t.Fatalf("unexpected authorities: %v", got)
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, false)
	signupUser(t, svc, "bob", "goodpass", "PRODUCT_VIEW")

	if _, err := svc.Authenticate(context.Background(), "bob", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	// Unknown user surfaces to callers as the same generic failure as a
	// wrong password; only the log distinguishes them.
	if _, err := svc.Authenticate(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	if _, err := svc.Authenticate(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t, false)
	signupUser(t, svc, "carol", "pass123", "PRODUCT_VIEW")

	msg, err := svc.Signup(context.Background(), ports.SignupInput{
		Username: "carol",
		Password: "other",
		Email:    "carol2@example.com",
		Roles:    "PRODUCT_CREATE",
	})
	if err != nil {
		t.Fatalf("duplicate signup should not error: %v", err)
	}
	if msg != "username already exists" {
		t.Fatalf("unexpected duplicate message: %q", msg)
	}
}

func TestAuthService_Login_IssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestAuthService(t, true)
	signupUser(t, svc, "dave", "pass123", "PRODUCT_CREATE,PRODUCT_VIEW")

	token, err := svc.Login(context.Background(), "dave", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty string")
	}

	claims, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "dave" {
		t.Fatalf("expected subject dave, got %q", claims.Subject)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t, true)
	signupUser(t, svc, "erin", "pass123", "PRODUCT_VIEW")

	if _, err := svc.Login(context.Background(), "erin", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
