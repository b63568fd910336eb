package domain

import (
	"strings"
	"time"
)

// Authority strings compared by exact match. ROLE_CUSTOMER_SERVICE is a role
// marker but participates in authorization like any other authority.
const (
	AuthorityProductCreate = "PRODUCT_CREATE"
	AuthorityProductUpdate = "PRODUCT_UPDATE"
	AuthorityProductDelete = "PRODUCT_DELETE"
	AuthorityProductView   = "PRODUCT_VIEW"
	RoleCustomerService    = "ROLE_CUSTOMER_SERVICE"
)

// User is the stored identity read on every credential authentication
// attempt. The password hash is never serialized and never logged.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        string    `json:"roles"` // comma-separated authority list
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SplitRoles parses a comma-separated roles column into individual
// authorities, trimming whitespace and dropping empty entries.
func SplitRoles(csv string) []string {
	parts := strings.Split(csv, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
