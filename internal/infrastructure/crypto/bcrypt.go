// Package crypto provides the bcrypt-backed password hasher.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher satisfies ports.PasswordHasher with bcrypt's adaptive,
// per-value-salted hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given cost; cost <= 0 uses
// bcrypt.DefaultCost. An out-of-range cost surfaces on the first Hash call
// and should abort startup, not be handled per-request.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
