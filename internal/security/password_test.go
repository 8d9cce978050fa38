package security_test

import (
	"testing"

	"github.com/sikmo/useradmin/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret-pass")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := security.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := security.CheckPassword(hash, "wrongpass"); err == nil {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := security.HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	h2, err := security.HashPassword("same-input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("two hashes of the same input should differ (random salt)")
	}

	// both must still verify
	if err := security.CheckPassword(h1, "same-input"); err != nil {
		t.Fatalf("first hash did not verify: %v", err)
	}
	if err := security.CheckPassword(h2, "same-input"); err != nil {
		t.Fatalf("second hash did not verify: %v", err)
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// malformed or empty stored hashes must fail, never panic

	if err := security.CheckPassword("", "anything"); err == nil {
		t.Fatalf("empty hash should not verify")
	}

	if err := security.CheckPassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatalf("garbage hash should not verify")
	}
}
