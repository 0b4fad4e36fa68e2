package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncryptedBlob represents a protected PII value.
//
// KeyVersion records the encryption key version; the payload holds
// nonce, ciphertext, and authentication tag concatenated. A blob can only be
// decrypted with the key version it records.
//
// The serialized form is "version:payload-base64", e.g. "2:SGVsbG8=".
type EncryptedBlob struct {
	KeyVersion uint
	Payload    []byte
}

// ParseEncryptedBlob creates an EncryptedBlob from its string representation.
//
// The input must be in the form "version:payload-base64" where version is a
// non-negative integer and payload is standard base64 (may be empty only in
// degenerate cases; the payload of a real blob always contains at least the
// nonce and tag).
func ParseEncryptedBlob(content string) (EncryptedBlob, error) {
	parts := strings.SplitN(content, ":", 2)
	if len(parts) != 2 {
		return EncryptedBlob{}, fmt.Errorf(
			"%w: expected format 'version:payload', got %d parts",
			ErrInvalidBlobFormat,
			len(parts),
		)
	}

	version, err := strconv.ParseUint(parts[0], 10, 0)
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrInvalidBlobVersion, err)
	}

	payload, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrInvalidBlobBase64, err)
	}

	return EncryptedBlob{
		KeyVersion: uint(version),
		Payload:    payload,
	}, nil
}

// String serializes the EncryptedBlob to "version:payload-base64".
// Round-trips with ParseEncryptedBlob.
func (eb EncryptedBlob) String() string {
	return fmt.Sprintf("%d:%s", eb.KeyVersion, base64.StdEncoding.EncodeToString(eb.Payload))
}
