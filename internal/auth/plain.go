package auth

// PlainVerifier stores passwords verbatim and compares by equality.
// This matches the protocol's historical behavior and is the default;
// see BcryptVerifier for the hashed alternative.
type PlainVerifier struct{}

// NewPlainVerifier creates a plaintext-equality verifier.
func NewPlainVerifier() *PlainVerifier {
	return &PlainVerifier{}
}

// Hash returns the password unchanged.
func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares the stored value and the password for equality.
func (PlainVerifier) Verify(stored, password string) bool {
	return stored == password
}
