package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	secret := []byte("test-secret")

	signed := Sign("session-id-123", secret)
	assert.True(t, strings.HasPrefix(signed, "session-id-123."))

	value, ok := Verify(signed, secret)
	require.True(t, ok)
	assert.Equal(t, "session-id-123", value)
}

func TestVerifyRejectsTamperedValue(t *testing.T) {
	secret := []byte("test-secret")
	signed := Sign("session-id-123", secret)

	tampered := strings.Replace(signed, "123", "456", 1)
	_, ok := Verify(tampered, secret)
	assert.False(t, ok)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed := Sign("session-id-123", []byte("secret-a"))

	_, ok := Verify(signed, []byte("secret-b"))
	assert.False(t, ok)
}

func TestVerifyRejectsUnsignedValue(t *testing.T) {
	_, ok := Verify("no-signature-here", []byte("secret"))
	assert.False(t, ok)
}

func TestSecureTokenLengthAndUniqueness(t *testing.T) {
	a := SecureToken(32)
	b := SecureToken(32)

	assert.Len(t, a, 43) // 32 bytes base64url, unpadded
	assert.NotEqual(t, a, b)
}
