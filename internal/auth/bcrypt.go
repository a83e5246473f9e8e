package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptVerifier stores bcrypt hashes instead of plaintext.
// Accounts created under PlainVerifier will not verify under this scheme;
// switch schemes only on a fresh database.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a bcrypt-backed verifier with the default cost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of the password.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares the stored hash against the password.
func (v *BcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
