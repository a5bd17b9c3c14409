// Package credentials handles password hashing and verification.
package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. Fixed at build time, never
// request-supplied.
const hashCost = 12

// HashPassword hashes a plaintext password using bcrypt. bcrypt salts
// each hash with fresh randomness, so equal plaintexts never produce
// equal credentials.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with the stored hash.
// The comparison is constant-time with respect to mismatch position.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
