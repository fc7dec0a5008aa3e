package auth_test

import (
	"errors"
	"testing"

	"github.com/mamba-kebabs/ordering/internal/auth"
)

func TestSharedSecret_Plain(t *testing.T) {
	s, err := auth.NewSharedSecret("kebab-time")
	if err != nil {
		t.Fatalf("new shared secret: %v", err)
	}
	if !s.Verify("kebab-time") {
		t.Error("expected correct password to verify")
	}
	if s.Verify("kebab-tim") {
		t.Error("expected wrong password to fail")
	}
}

func TestSharedSecret_FromHash(t *testing.T) {
	hash, err := auth.HashPassword("kebab-time")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	s, err := auth.NewSharedSecretFromHash(hash)
	if err != nil {
		t.Fatalf("new shared secret from hash: %v", err)
	}
	if !s.Verify("kebab-time") {
		t.Error("expected correct password to verify")
	}
}

func TestSharedSecret_Invalid(t *testing.T) {
	if _, err := auth.NewSharedSecret(""); !errors.Is(err, auth.ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
	if _, err := auth.NewSharedSecretFromHash("plaintext"); err == nil {
		t.Error("expected error for a non-bcrypt hash")
	}
}
