// Package auth isolates credential handling behind a single interface so
// the hashing scheme can be swapped without touching the protocol layer.
package auth

// Verifier defines the interface for credential storage schemes.
// This abstraction allows swapping between different schemes (plaintext,
// bcrypt, etc.) without changing the service layer code.
type Verifier interface {
	// Hash transforms a password into its stored representation.
	Hash(password string) (string, error)

	// Verify reports whether the given password matches the stored
	// representation.
	Verify(stored, password string) bool
}
