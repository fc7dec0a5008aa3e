package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptySecret = errors.New("shared secret is empty")

// SharedSecret is the kitchen password, kept only as a bcrypt hash.
type SharedSecret struct {
	hash []byte
}

// NewSharedSecret hashes a plaintext password.
func NewSharedSecret(plain string) (*SharedSecret, error) {
	if plain == "" {
		return nil, ErrEmptySecret
	}
	hash, err := HashPassword(plain)
	if err != nil {
		return nil, err
	}
	return &SharedSecret{hash: []byte(hash)}, nil
}

// NewSharedSecretFromHash wraps a hash produced by HashPassword (or htpasswd -B).
func NewSharedSecretFromHash(hash string) (*SharedSecret, error) {
	if hash == "" {
		return nil, ErrEmptySecret
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &SharedSecret{hash: []byte(hash)}, nil
}

func (s *SharedSecret) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
