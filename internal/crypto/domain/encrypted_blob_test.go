package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncryptedBlob(t *testing.T) {
	t.Run("valid blob round-trips", func(t *testing.T) {
		original := EncryptedBlob{KeyVersion: 3, Payload: []byte("nonce-and-ciphertext")}
		parsed, err := ParseEncryptedBlob(original.String())
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := ParseEncryptedBlob("justonepart")
		assert.ErrorIs(t, err, ErrInvalidBlobFormat)
	})

	t.Run("non-numeric version", func(t *testing.T) {
		_, err := ParseEncryptedBlob("abc:SGVsbG8=")
		assert.ErrorIs(t, err, ErrInvalidBlobVersion)
	})

	t.Run("negative version", func(t *testing.T) {
		_, err := ParseEncryptedBlob("-1:SGVsbG8=")
		assert.ErrorIs(t, err, ErrInvalidBlobVersion)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		_, err := ParseEncryptedBlob("1:not base64!!!")
		assert.ErrorIs(t, err, ErrInvalidBlobBase64)
	})

	t.Run("payload containing colon-like bytes survives", func(t *testing.T) {
		original := EncryptedBlob{KeyVersion: 1, Payload: []byte("a:b:c")}
		parsed, err := ParseEncryptedBlob(original.String())
		require.NoError(t, err)
		assert.Equal(t, original.Payload, parsed.Payload)
	})
}

func TestZero(t *testing.T) {
	t.Run("zeroes a slice", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0}, b)
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
