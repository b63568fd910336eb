package authz

import (
	"net/http"
	"testing"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

func principal(authorities ...string) *domain.Principal {
	return domain.NewPrincipal("alice", authorities)
}

func TestEngine_GetProduct_CompositeRule(t *testing.T) {
	engine := NewEngine(DefaultPolicies())

	// ROLE_CUSTOMER_SERVICE alone is enough, no PRODUCT_VIEW required.
	d := engine.Evaluate(http.MethodGet, "/api/products/getProduct/5", principal(domain.RoleCustomerService))
	if !d.Allowed {
		t.Fatalf("expected allow for customer service role, got deny (%s)", d.Reason)
	}

	d = engine.Evaluate(http.MethodGet, "/api/products/getProduct/5", principal(domain.AuthorityProductView))
	if !d.Allowed {
		t.Fatalf("expected allow for product view, got deny (%s)", d.Reason)
	}

	d = engine.Evaluate(http.MethodGet, "/api/products/getProduct/5", principal("PRODUCT_CREATE"))
	if d.Allowed || d.Reason != DenyForbidden {
		t.Fatalf("expected forbidden for principal with neither authority, got %+v", d)
	}
}

func TestEngine_CreateProduct(t *testing.T) {
	engine := NewEngine(DefaultPolicies())

	d := engine.Evaluate(http.MethodPost, "/api/products", principal(domain.AuthorityProductCreate))
	if !d.Allowed {
		t.Fatalf("expected allow, got deny (%s)", d.Reason)
	}

	// Authenticated but lacking the authority: forbidden, not unauthenticated.
	d = engine.Evaluate(http.MethodPost, "/api/products", principal(domain.AuthorityProductView))
	if d.Allowed || d.Reason != DenyForbidden {
		t.Fatalf("expected forbidden, got %+v", d)
	}

	// Anonymous: unauthenticated.
	d = engine.Evaluate(http.MethodPost, "/api/products", nil)
	if d.Allowed || d.Reason != DenyUnauthenticated {
		t.Fatalf("expected unauthenticated, got %+v", d)
	}
}

func TestEngine_UpdateDelete_RequireAuthority(t *testing.T) {
	engine := NewEngine(DefaultPolicies())

	d := engine.Evaluate(http.MethodPut, "/api/products/update/9", principal(domain.AuthorityProductUpdate))
	if !d.Allowed {
		t.Fatalf("expected allow for update authority, got deny (%s)", d.Reason)
	}
	d = engine.Evaluate(http.MethodPut, "/api/products/update/9", principal(domain.AuthorityProductDelete))
	if d.Allowed {
		t.Fatalf("expected deny for wrong authority")
	}

	d = engine.Evaluate(http.MethodDelete, "/api/products/delete/9", principal(domain.AuthorityProductDelete))
	if !d.Allowed {
		t.Fatalf("expected allow for delete authority, got deny (%s)", d.Reason)
	}
}

func TestEngine_UserRoutes_PermitAnonymous(t *testing.T) {
	engine := NewEngine(DefaultPolicies())

	for _, path := range []string{"/api/User/signup", "/api/User/login", "/api/User"} {
		d := engine.Evaluate(http.MethodPost, path, nil)
		if !d.Allowed {
			t.Fatalf("expected anonymous allow for %s, got deny (%s)", path, d.Reason)
		}
	}
}

func TestEngine_Fallback_RequiresAuthentication(t *testing.T) {
	engine := NewEngine(DefaultPolicies())

	d := engine.Evaluate(http.MethodGet, "/api/somewhere/else", nil)
	if d.Allowed || d.Reason != DenyUnauthenticated {
		t.Fatalf("expected unauthenticated for unmatched anonymous request, got %+v", d)
	}

	d = engine.Evaluate(http.MethodGet, "/api/somewhere/else", principal())
	if !d.Allowed {
		t.Fatalf("expected allow for any authenticated principal, got deny (%s)", d.Reason)
	}
}

func TestEngine_FirstMatchWins(t *testing.T) {
	engine := NewEngine([]Policy{
		{Method: http.MethodGet, Path: "/things/*", Rule: PermitAll()},
		{Method: http.MethodGet, Path: "/things/secret", Rule: HasAuthority("NEVER_REACHED")},
	})

	d := engine.Evaluate(http.MethodGet, "/things/secret", nil)
	if !d.Allowed {
		t.Fatalf("expected first matching policy to win, got deny (%s)", d.Reason)
	}
}

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/products", "/api/products", true},
		{"/api/products", "/api/products/5", false},
		{"/api/products/update/*", "/api/products/update/5", true},
		{"/api/products/update/*", "/api/products/update", false},
		{"/api/products/update/*", "/api/products/update/5/extra", false},
		{"/api/User/**", "/api/User/signup", true},
		{"/api/User/**", "/api/User/a/b/c", true},
		{"/api/User/**", "/api/User", true},
		{"/api/User/**", "/api/Users", false},
		{"/health/**", "/health", true},
		{"/metrics", "/metrics", true},
	}
	for _, tc := range cases {
		if got := MatchPath(tc.pattern, tc.path); got != tc.want {
			t.Errorf("MatchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestRuleCombinators(t *testing.T) {
	p := principal("A", "B")

	if !AllOf(HasAuthority("A"), HasAuthority("B"))(p) {
		t.Fatalf("AllOf should pass when every authority is held")
	}
	if AllOf(HasAuthority("A"), HasAuthority("C"))(p) {
		t.Fatalf("AllOf should fail when any authority is missing")
	}
	if !AnyOf(HasAuthority("C"), HasAuthority("B"))(p) {
		t.Fatalf("AnyOf should pass when one authority is held")
	}
	if !Not(HasAuthority("C"))(p) {
		t.Fatalf("Not should invert a failing rule")
	}
	if Authenticated()(nil) {
		t.Fatalf("Authenticated should fail for anonymous")
	}
	if !PermitAll()(nil) {
		t.Fatalf("PermitAll should pass for anonymous")
	}
}
