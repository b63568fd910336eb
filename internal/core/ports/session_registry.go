package ports

import (
	"context"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// SessionRegistry enforces the single-active-session policy in credential
// mode: Bind replaces any prior session for the same username, invalidating
// it at that moment. Token mode constructs no registry at all.
type SessionRegistry interface {
	// Bind records a new session for the principal and returns its id.
	// replaced reports whether a prior session was invalidated.
	Bind(ctx context.Context, principal *domain.Principal) (id string, replaced bool, err error)
	// Resolve returns the principal bound to a session id, or
	// domain.ErrSessionInvalid when the id is unknown or superseded.
	Resolve(ctx context.Context, id string) (*domain.Principal, error)
	// Invalidate removes a session. Unknown ids are a no-op.
	Invalidate(ctx context.Context, id string) error
}
