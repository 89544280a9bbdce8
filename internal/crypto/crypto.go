package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SecureToken returns a random URL-safe token with the given number of
// bytes of entropy.
func SecureToken(bytes int) string {
	b := make([]byte, bytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Sign appends an HMAC-SHA256 signature to value, producing
// "<value>.<signature>". The value itself must not contain a dot.
func Sign(value string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return value + "." + sig
}

// Verify checks a signed value produced by Sign and returns the original
// value. Tampered or malformed input returns ok=false.
func Verify(signed string, secret []byte) (value string, ok bool) {
	i := strings.LastIndex(signed, ".")
	if i < 0 {
		return "", false
	}

	value = signed[:i]
	if !hmac.Equal([]byte(signed), []byte(Sign(value, secret))) {
		return "", false
	}

	return value, true
}
