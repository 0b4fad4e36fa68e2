package commands

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGenSecret(t *testing.T) {
	t.Run("writes a base64 secret of at least 32 decoded bytes", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RunGenSecret(&buf))

		encoded := strings.TrimSpace(buf.String())
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
	})

	t.Run("successive secrets differ", func(t *testing.T) {
		var first, second bytes.Buffer

		require.NoError(t, RunGenSecret(&first))
		require.NoError(t, RunGenSecret(&second))

		assert.NotEqual(t, first.String(), second.String())
	})
}

func TestRunGenPIIKey(t *testing.T) {
	t.Run("writes a versioned key entry", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RunGenPIIKey(&buf, 2))

		entry := strings.TrimSpace(buf.String())
		parts := strings.SplitN(entry, ":", 2)
		require.Len(t, parts, 2)
		assert.Equal(t, "2", parts[0])

		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
	})
}
