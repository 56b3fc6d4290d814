package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input limit; longer passwords are truncated.
const MaxPasswordBytes = 72

// HashPassword hashes the UTF-8 bytes of password with bcrypt. Input beyond
// MaxPasswordBytes is dropped and truncated reports that it happened so the
// caller can warn the operator.
func HashPassword(password string) (hash string, truncated bool, err error) {
	raw, truncated := truncate(password)
	out, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", truncated, err
	}
	return string(out), truncated, nil
}

// VerifyPassword reports whether password matches hash. Malformed hashes and
// any other failure count as a mismatch.
func VerifyPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	raw, _ := truncate(password)
	return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}

// NeedsTruncation reports whether password exceeds the bcrypt input limit.
func NeedsTruncation(password string) bool {
	return len(password) > MaxPasswordBytes
}

func truncate(password string) ([]byte, bool) {
	raw := []byte(password)
	if len(raw) > MaxPasswordBytes {
		return raw[:MaxPasswordBytes], true
	}
	return raw, false
}
