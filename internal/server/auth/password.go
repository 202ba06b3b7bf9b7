package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts the one-way hash used for passwords and recovery
// answers.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(plaintext string) (string, error)

	// Check reports whether plaintext matches the stored hash.
	Check(plaintext, hash string) bool
}

// BcryptHasher hashes with bcrypt at the default cost (10 rounds).
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// NormalizeAnswer canonicalizes a recovery answer before hashing or checking,
// so that matching is case-insensitive.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
