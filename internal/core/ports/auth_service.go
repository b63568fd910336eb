package ports

import (
	"context"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// SignupInput carries the signup payload. Roles is a comma-separated
// authority list, stored verbatim.
type SignupInput struct {
	Username string
	Password string
	Email    string
	Roles    string
}

// AuthService implements signup and the two authentication entry points.
type AuthService interface {
	// Signup registers a new identity. A duplicate username yields the plain
	// message "username already exists" with no error.
	Signup(ctx context.Context, in SignupInput) (string, error)
	// Authenticate verifies credentials against the store and returns the
	// principal. Unknown-user and wrong-password cases are distinguished in
	// logs only; callers always get domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
	// Login authenticates and issues a bearer token (token mode only).
	Login(ctx context.Context, username, password string) (string, error)
}
