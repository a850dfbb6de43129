package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes owner credentials with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("cannot hash password: %w", err)
	}
	return string(hash), nil
}

// Check compares password against stored. A stored value that is not a bcrypt
// hash is treated as a legacy plaintext credential; needsRehash reports it.
func (h *PasswordHasher) Check(password, stored string) (ok bool, needsRehash bool) {
	if !IsHashed(stored) {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, true
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
		return false, false
	}
	cost, err := bcrypt.Cost([]byte(stored))
	return true, err != nil || cost != h.cost
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}
