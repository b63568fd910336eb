package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
	"github.com/durgamdileep/product-auth-api/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// TokenService signs and verifies HS256 bearer tokens. When no secret is
// configured the signing key is 32 random bytes generated here and held only
// in memory, so every token issued becomes unverifiable after a restart.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService builds a TokenService. secret may be empty to use an
// ephemeral per-process key; ttl <= 0 falls back to defaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now}, nil
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue signs a token with subject = username, the principal's authorities
// as the roles claim, and exp = now + ttl.
func (s *TokenService) Issue(principal *domain.Principal) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Roles: principal.Authorities(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Tampered or wrongly-keyed tokens fail
// with domain.ErrTokenSignatureInvalid, expired ones with
// domain.ErrTokenExpired, anything structurally broken with
// domain.ErrTokenMalformed.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}

	out := &ports.TokenClaims{
		Subject: claims.Subject,
		Roles:   claims.Roles,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Validate reports whether the token verifies, is unexpired, and carries
// expectedUsername as its subject. A subject mismatch is a validation
// failure, never silently ignored.
func (s *TokenService) Validate(token, expectedUsername string) bool {
	claims, err := s.Verify(token)
	if err != nil {
		return false
	}
	return claims.Subject == expectedUsername && !claims.Expired(s.now())
}
