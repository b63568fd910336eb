package domain

import "sort"

// Principal is the resolved identity attached to an authenticated request.
// It is built fresh per request from exactly one source (the stored roles
// column in credential mode, the token roles claim in token mode) and is
// immutable after construction. A nil *Principal means anonymous.
type Principal struct {
	Username string

	authorities map[string]struct{}
}

// NewPrincipal builds a Principal with the given authority set.
func NewPrincipal(username string, authorities []string) *Principal {
	set := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return &Principal{Username: username, authorities: set}
}

// HasAuthority reports whether the principal holds the named authority.
// Safe to call on a nil receiver: anonymous holds nothing.
func (p *Principal) HasAuthority(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.authorities[name]
	return ok
}

// Authorities returns the authority set as a sorted slice.
func (p *Principal) Authorities() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.authorities))
	for a := range p.authorities {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
