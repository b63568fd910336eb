package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
)

// AuthService implements signup and both authentication entry points.
// tokens is nil in credential (basic) mode, where login goes through the
// session registry instead.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Signup registers a new identity. The duplicate-username case is a plain
// message, not an error.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return "username already exists", nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        in.Roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	s.log.Info().Str("username", in.Username).Msg("user registered")
	return fmt.Sprintf("%s successfully registered", in.Username), nil
}

// Authenticate verifies credentials against the store. The unknown-user and
// wrong-password cases are logged with distinguishing detail but both come
// back as domain.ErrInvalidCredentials so the client-visible response stays
// uniform.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", username).Msg("authentication failed: unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("username", username).Msg("authentication failed: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	roles := domain.SplitRoles(user.Roles)
	return domain.NewPrincipal(user.Username, roles), nil
}

// Login authenticates and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return "", err
	}
	return token, nil
}
