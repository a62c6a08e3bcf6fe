// Package session drives the PKCE login flow and the authenticated session
// lifecycle. The session manager is the sole writer of the session store;
// refresh is caller-triggered, never automatic.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// verifierBytes yields a 43-character base64url verifier, the RFC 7636
// minimum length.
const verifierBytes = 32

// NewVerifier generates a high-entropy PKCE code verifier.
func NewVerifier() (string, error) {
	buf := make([]byte, verifierBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ChallengeS256 derives the S256 code challenge for a verifier:
// base64url, no padding, of the verifier's SHA-256 digest.
func ChallengeS256(verifier string) string {
	digest := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}
