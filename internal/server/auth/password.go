// Package auth implements the credential primitives of the server: bcrypt
// password hashing and the signed session/verification token codec.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bloggyhq/bloggy/internal/common"
)

// PasswordHasher wraps bcrypt with a configurable work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a hasher. Costs below bcrypt's minimum fall
// back to the default cost (10).
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a salted bcrypt digest for the given plaintext.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrorValidation)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// Compare validates the given cleartext password against a stored digest.
// A mismatch returns common.ErrorBadCredentials; any other failure (for
// example a corrupt digest) is surfaced as-is so callers report it as an
// internal error rather than a wrong password.
func (h *PasswordHasher) Compare(password, digest string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrorBadCredentials
		}
		return err
	}
	return nil
}
