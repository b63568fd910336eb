// Package authz evaluates route policies against the authenticated
// principal. Rules are pure predicates over the principal's authority set,
// so arbitrary boolean policies compose without special-casing.
package authz

import "github.com/durgamdileep/product-auth-api/internal/core/domain"

// Rule decides whether a principal (nil = anonymous) may pass.
type Rule func(p *domain.Principal) bool

// HasAuthority requires exact membership of the named authority.
func HasAuthority(name string) Rule {
	return func(p *domain.Principal) bool {
		return p.HasAuthority(name)
	}
}

// Authenticated requires any non-anonymous principal.
func Authenticated() Rule {
	return func(p *domain.Principal) bool {
		return p != nil
	}
}

// PermitAll passes everyone, anonymous included.
func PermitAll() Rule {
	return func(*domain.Principal) bool {
		return true
	}
}

// AnyOf passes when at least one rule passes.
func AnyOf(rules ...Rule) Rule {
	return func(p *domain.Principal) bool {
		for _, r := range rules {
			if r(p) {
				return true
			}
		}
		return false
	}
}

// AllOf passes when every rule passes.
func AllOf(rules ...Rule) Rule {
	return func(p *domain.Principal) bool {
		for _, r := range rules {
			if !r(p) {
				return false
			}
		}
		return true
	}
}

// Not inverts a rule.
func Not(rule Rule) Rule {
	return func(p *domain.Principal) bool {
		return !rule(p)
	}
}
