// Package service provides credential hashing for the principal directory.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/civicgate/trustplane/internal/errors"
)

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// HashPassword hashes a plain password with Argon2id.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword verifies a plain password against its hash in constant
	// time. Returns false on any verification error.
	ComparePassword(plainPassword, hashedPassword string) bool
}

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService with the moderate Argon2id
// policy, balancing login latency against brute-force cost.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	return &passwordService{hasher: hasher}
}

// HashPassword hashes a plain password using Argon2id.
func (s *passwordService) HashPassword(plainPassword string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// ComparePassword verifies a plain password against its Argon2id hash.
func (s *passwordService) ComparePassword(plainPassword, hashedPassword string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}
