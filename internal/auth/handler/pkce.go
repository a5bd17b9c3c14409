package handler

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

// stateTTL bounds how long an OAuth handshake may stay open.
const stateTTL = 5 * time.Minute

// randomToken returns 256 bits of URL-safe randomness, used for both
// the state parameter and the PKCE verifier.
func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// generatePKCE returns a fresh code verifier and its S256 challenge.
func generatePKCE() (verifier string, challenge string) {
	verifier = randomToken()
	hash := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(hash[:])
	return verifier, challenge
}
