package authz

import (
	"net/http"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// DefaultPolicies is the product API route table. Order matters: the first
// match wins. GET getProduct is the one composite rule: PRODUCT_VIEW or
// ROLE_CUSTOMER_SERVICE passes; everything under /api/User is open so
// signup and login work anonymously.
func DefaultPolicies() []Policy {
	return []Policy{
		{Method: http.MethodPost, Path: "/api/products", Rule: HasAuthority(domain.AuthorityProductCreate)},
		{Method: http.MethodPut, Path: "/api/products/update/*", Rule: HasAuthority(domain.AuthorityProductUpdate)},
		{Method: http.MethodDelete, Path: "/api/products/delete/*", Rule: HasAuthority(domain.AuthorityProductDelete)},
		{Method: http.MethodGet, Path: "/api/products/getProduct/*", Rule: AnyOf(
			HasAuthority(domain.AuthorityProductView),
			HasAuthority(domain.RoleCustomerService),
		)},
		{Path: "/api/User/**", Rule: PermitAll()},
		{Path: "/health/**", Rule: PermitAll()},
		{Path: "/metrics", Rule: PermitAll()},
	}
}
