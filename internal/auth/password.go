package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with a fixed bcrypt cost.
// It is immutable after construction and safe for concurrent use.
type BcryptHasher struct {
	cost  int
	decoy []byte
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate decoy: %w", err)
	}
	decoy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), cost)
	if err != nil {
		return nil, fmt.Errorf("hash decoy: %w", err)
	}

	return &BcryptHasher{cost: cost, decoy: decoy}, nil
}

// Hash returns a salted digest; two calls with the same password differ.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrHashing, err)
	}
	return string(digest), nil
}

// Verify reports whether digest was produced from password. A mismatch is
// (false, nil); only a malformed digest is an error.
func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", domain.ErrHashing, err)
	}
}

// Decoy burns one comparison against a digest nothing matches, so a login
// for an unknown email costs the same as one with a wrong password.
func (h *BcryptHasher) Decoy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(password))
}
