package authz

import (
	"strings"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

// DenyReason distinguishes the two rejection outcomes so the HTTP boundary
// can choose 401 vs 403.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision is the single allow/deny outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Policy binds a method and path pattern to a rule. An empty Method matches
// every method. Path patterns match whole segments: "*" matches exactly one
// segment, a trailing "**" matches any remainder.
type Policy struct {
	Method string
	Path   string
	Rule   Rule
}

// Engine evaluates an ordered policy table; the first structural match
// (method + path) determines the decision. Unmatched requests fall through
// to the fallback rule.
type Engine struct {
	policies []Policy
	fallback Rule
}

// NewEngine builds an engine over the given table. Unmatched requests
// require any authenticated principal.
func NewEngine(policies []Policy) *Engine {
	return &Engine{policies: policies, fallback: Authenticated()}
}

// Evaluate makes exactly one decision for the request; evaluation stops at
// the first matching policy.
func (e *Engine) Evaluate(method, path string, p *domain.Principal) Decision {
	rule := e.fallback
	for _, pol := range e.policies {
		if pol.Method != "" && pol.Method != method {
			continue
		}
		if !MatchPath(pol.Path, path) {
			continue
		}
		rule = pol.Rule
		break
	}

	if rule(p) {
		return Decision{Allowed: true}
	}
	if p == nil {
		return Decision{Reason: DenyUnauthenticated}
	}
	return Decision{Reason: DenyForbidden}
}

// MatchPath reports whether path matches a segment pattern. "*" consumes one
// segment; a trailing "**" consumes the rest of the path, including nothing.
func MatchPath(pattern, path string) bool {
	pat := splitPath(pattern)
	seg := splitPath(path)

	for i, p := range pat {
		if p == "**" && i == len(pat)-1 {
			return true
		}
		if i >= len(seg) {
			return false
		}
		if p != "*" && p != seg[i] {
			return false
		}
	}
	return len(pat) == len(seg)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
