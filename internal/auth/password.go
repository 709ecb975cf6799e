package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// passwordSymbols is the punctuation set accepted by the password policy.
const passwordSymbols = "!@#$%^&*()-_=+[]{}|;:,.<>?`~"

// HashPassword produces a salted bcrypt digest of the plaintext.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// A malformed digest yields false rather than an error escaping the boundary.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// MeetsPolicy checks minimum password strength: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit and a symbol.
func MeetsPolicy(plaintext string) bool {
	if len(plaintext) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
