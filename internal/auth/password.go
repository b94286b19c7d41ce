// Package auth implements one-way password hashing with per-account
// salts. Digest and salt are stored as opaque strings; verification
// recomputes the digest and compares in constant time.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const saltBytes = 16

// HashPassword hashes a plaintext password with a fresh random salt.
// Two calls with the same plaintext produce different digests and
// different salts.
func HashPassword(plain string) (digest, salt string, err error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt = hex.EncodeToString(buf)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), salt, nil
}

// VerifyPassword reports whether plain matches the stored digest and
// salt. It returns false for any mismatch, including a malformed
// stored digest; it never panics for a wrong password.
func VerifyPassword(plain, digest, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain+salt)) == nil
}
