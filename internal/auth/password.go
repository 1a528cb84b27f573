// Package auth provides password hashing and JWT session credentials.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// prehash mixes the full password into a fixed-length hex string so bcrypt
// never silently truncates input beyond its 72 byte limit.
func prehash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HashPassword returns a bcrypt digest over the sha256 prehash of password.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(prehash(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether password matches digest. Digests are
// polymorphic: the current scheme is bcrypt over the sha256 prehash, and
// older accounts carry bcrypt directly over the plaintext. Both are tried;
// malformed digests and primitive failures degrade to a non-match rather
// than an error, since this sits on the authentication boundary.
func VerifyPassword(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(digest), []byte(prehash(password))) == nil {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
