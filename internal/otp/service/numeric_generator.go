package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// maxCodeLength bounds generated codes to a sane size.
const maxCodeLength = 10

type numericGenerator struct{}

// NewNumericGenerator creates a generator of cryptographically secure random
// numeric verification codes.
func NewNumericGenerator() CodeGenerator {
	return &numericGenerator{}
}

// Generate creates a random numeric code of the given length. Each digit is
// drawn independently so leading zeros are possible and the space is uniform.
func (g *numericGenerator) Generate(length int) (string, error) {
	if length < 4 {
		return "", errors.New("code length must be at least 4")
	}
	if length > maxCodeLength {
		return "", errors.New("code length must not exceed 10")
	}

	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		//nolint:gosec // n is bounded [0,9] by big.NewInt(10), safe conversion
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
