package ports

import (
	"time"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// TokenClaims is the decoded payload of a verified token.
type TokenClaims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims expired relative to now.
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// TokenService issues and verifies signed, expiring bearer tokens. The
// signing key lives for the process lifetime only unless configured
// explicitly, so tokens become unverifiable after a restart.
type TokenService interface {
	// Issue signs a token carrying the principal's username and authorities.
	Issue(principal *domain.Principal) (string, error)
	// Verify checks signature then structure; it fails with
	// domain.ErrTokenSignatureInvalid, domain.ErrTokenExpired or
	// domain.ErrTokenMalformed.
	Verify(token string) (*TokenClaims, error)
	// Validate reports whether the token verifies, is unexpired and was
	// issued to expectedUsername.
	Validate(token, expectedUsername string) bool
}
