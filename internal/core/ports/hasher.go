package ports

// PasswordHasher is the one-way hashing capability used at registration
// and login. Verify must compare in constant time with respect to the
// submitted password and return a non-nil error on mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}
