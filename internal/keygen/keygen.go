// Package keygen builds collision-resistant object keys for uploaded images.
package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultBytes is the amount of randomness in a key token.
const DefaultBytes = 32

// RandomHex returns 2*n lowercase hex characters read from crypto/rand.
// A non-positive n uses DefaultBytes.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		n = DefaultBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ObjectKey joins a key prefix, a random token and a suffix as
// "<prefix><token>-<suffix>". The suffix may be empty and is passed
// through SanitizeSuffix.
func ObjectKey(prefix, token, suffix string) string {
	return prefix + token + "-" + SanitizeSuffix(suffix)
}

// SanitizeSuffix replaces every byte outside [A-Za-z0-9._-] with '-', so the
// key is usable verbatim in CDN URLs and invalidation paths.
func SanitizeSuffix(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			b[i] = '-'
		}
	}
	return string(b)
}
