package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("wrap nil returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("wrapped error preserves the sentinel", func(t *testing.T) {
		err := Wrap(ErrForbidden, "gateway signature mismatch")
		require.Error(t, err)
		assert.True(t, Is(err, ErrForbidden))
		assert.Contains(t, err.Error(), "gateway signature mismatch")
	})

	t.Run("double wrap preserves the sentinel", func(t *testing.T) {
		err := Wrap(Wrap(ErrRateLimited, "otp challenge"), "handler")
		assert.True(t, Is(err, ErrRateLimited))
	})
}

func TestAs(t *testing.T) {
	type timeoutError struct{ error }

	inner := timeoutError{error: New("deadline")}
	err := fmt.Errorf("outer: %w", inner)

	var target timeoutError
	assert.True(t, As(err, &target))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrRateLimited,
		ErrConfiguration,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
