package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// passwordDigest reduces the plaintext to a fixed-size input for bcrypt.
// bcrypt only reads the first 72 bytes, which would silently truncate long
// passwords and hard-fail on newer x/crypto versions; a SHA-256 digest keeps
// every byte of the plaintext significant. Base64 keeps NUL bytes out of the
// bcrypt input.
func passwordDigest(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword produces a salted bcrypt hash of the plaintext. bcrypt embeds
// a fresh random salt on every call, so hashing the same password twice
// yields different strings.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// malformed or foreign-format hash reports false rather than an error: to
// callers a corrupt hash and a wrong password are the same thing.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(plaintext)) == nil
}
