package ports

// PasswordHasher is a one-way adaptive hash with a per-value salt.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
