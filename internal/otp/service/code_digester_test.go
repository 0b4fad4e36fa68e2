package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgate/trustplane/internal/errors"
)

var testDigestSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewCodeDigester(t *testing.T) {
	t.Run("accepts 32-byte secret", func(t *testing.T) {
		_, err := NewCodeDigester(testDigestSecret)
		assert.NoError(t, err)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewCodeDigester([]byte("short"))
		assert.ErrorIs(t, err, errors.ErrConfiguration)
	})
}

func TestCodeDigester(t *testing.T) {
	digester, err := NewCodeDigester(testDigestSecret)
	require.NoError(t, err)

	t.Run("digest is deterministic", func(t *testing.T) {
		first := digester.Digest("ana@example.com", "123456")
		second := digester.Digest("ana@example.com", "123456")
		assert.Equal(t, first, second)
	})

	t.Run("compare accepts matching code", func(t *testing.T) {
		digest := digester.Digest("ana@example.com", "123456")
		assert.True(t, digester.Compare("ana@example.com", "123456", digest))
	})

	t.Run("compare rejects wrong code", func(t *testing.T) {
		digest := digester.Digest("ana@example.com", "123456")
		assert.False(t, digester.Compare("ana@example.com", "123457", digest))
	})

	t.Run("digest is bound to destination", func(t *testing.T) {
		digest := digester.Digest("ana@example.com", "123456")
		assert.False(t, digester.Compare("bob@example.com", "123456", digest))
	})

	t.Run("different secrets produce different digests", func(t *testing.T) {
		other, err := NewCodeDigester([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)
		assert.False(t, bytes.Equal(
			digester.Digest("ana@example.com", "123456"),
			other.Digest("ana@example.com", "123456"),
		))
	})
}
