package ports

import (
	"context"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// UserRepository is the credential store adapter. The auth core only ever
// reads identities by username and creates them on signup.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
