package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_NeverEqualsPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestCheckPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !CheckPassword("secret123", hash) {
		t.Fatalf("expected correct password to verify")
	}
	if CheckPassword("secret124", hash) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashPassword_SaltsEveryCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (per-call salt)")
	}
}

func TestHashPassword_LongPasswords(t *testing.T) {
	t.Parallel()

	// beyond bcrypt's 72-byte input limit; the digest step must make the
	// full plaintext hashable and significant
	for _, n := range []int{73, 80, 100} {
		password := strings.Repeat("p", n)

		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%d chars) error: %v", n, err)
		}
		if !CheckPassword(password, hash) {
			t.Fatalf("expected %d-char password to verify", n)
		}
		if CheckPassword(password+"x", hash) {
			t.Fatalf("a %d-char password extended by one char must not verify", n)
		}
		if CheckPassword(password[:72], hash) {
			t.Fatalf("bytes past the 72nd must stay significant")
		}
	}
}

func TestCheckPassword_MalformedHashIsFalse(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{"", "plaintext", "$1$legacy$format", "x"} {
		if CheckPassword("anything", hash) {
			t.Fatalf("malformed hash %q must not verify", hash)
		}
	}
}
