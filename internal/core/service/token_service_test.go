package service

import (
	"errors"
	"testing"
	"time"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

func newTestTokenService(t *testing.T, secret string, ttl time.Duration) *TokenService {
	t.Helper()
	ts, err := NewTokenService(secret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t, "test-secret", time.Hour)
	p := domain.NewPrincipal("alice", []string{"PRODUCT_VIEW", "ROLE_CUSTOMER_SERVICE"})

	token, err := ts.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "PRODUCT_VIEW" || claims.Roles[1] != "ROLE_CUSTOMER_SERVICE" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issue time %v", claims.ExpiresAt, claims.IssuedAt)
	}

	if !ts.Validate(token, "alice") {
		t.Fatalf("Validate should pass before expiry with matching subject")
	}
}

func TestTokenService_SubjectMismatch(t *testing.T) {
	ts := newTestTokenService(t, "test-secret", time.Hour)
	token, err := ts.Issue(domain.NewPrincipal("alice", []string{"PRODUCT_VIEW"}))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if ts.Validate(token, "mallory") {
		t.Fatalf("Validate must fail on subject mismatch")
	}
}

func TestTokenService_Expired(t *testing.T) {
	ts := newTestTokenService(t, "test-secret", time.Minute)

	// Issue in the past, verify at the real current time.
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := ts.Issue(domain.NewPrincipal("alice", []string{"PRODUCT_VIEW"}))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	ts.now = time.Now

	if _, err := ts.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if ts.Validate(token, "alice") {
		t.Fatalf("Validate must fail for an expired token even with correct signature and subject")
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer := newTestTokenService(t, "key-one", time.Hour)
	verifier := newTestTokenService(t, "key-two", time.Hour)

	token, err := issuer.Issue(domain.NewPrincipal("alice", []string{"PRODUCT_VIEW"}))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	ts := newTestTokenService(t, "test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ts.Verify(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", token, err)
		}
	}
}

func TestTokenService_EphemeralKeysDiffer(t *testing.T) {
	// No configured secret: each process (here, each instance) gets its own
	// random key, so one service cannot verify another's tokens.
	a := newTestTokenService(t, "", time.Hour)
	b := newTestTokenService(t, "", time.Hour)

	token, err := a.Issue(domain.NewPrincipal("alice", []string{"PRODUCT_VIEW"}))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := a.Verify(token); err != nil {
		t.Fatalf("issuer should verify its own token: %v", err)
	}
	if _, err := b.Verify(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid across instances, got %v", err)
	}
}

func TestTokenService_TwoTokensIndependentlyValid(t *testing.T) {
	ts := newTestTokenService(t, "test-secret", time.Hour)
	p := domain.NewPrincipal("alice", []string{"PRODUCT_VIEW"})

	first, err := ts.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := ts.Issue(p)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Stateless: a second login does not invalidate the first token.
	if !ts.Validate(first, "alice") || !ts.Validate(second, "alice") {
		t.Fatalf("both tokens must remain valid until each expires")
	}
}
