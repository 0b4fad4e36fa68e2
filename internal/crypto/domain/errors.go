package domain

import (
	"github.com/civicgate/trustplane/internal/errors"
)

// PII protection error definitions.
//
// Decryption failures are typed so call sites can distinguish "tampered or
// wrong key" from "not set". Substituting a placeholder value on
// ErrDecryptionFailed is forbidden anywhere the plaintext feeds a security
// decision.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates authentication of a ciphertext failed.
	// Causes include tampering, truncation, and decryption under the wrong
	// key. The specific cause is deliberately not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrUnknownKeyVersion indicates the blob records a key version that is
	// not loaded in this process.
	ErrUnknownKeyVersion = errors.Wrap(errors.ErrInvalidInput, "unknown key version")

	// ErrInvalidBlobFormat indicates the encrypted blob format is invalid.
	ErrInvalidBlobFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob format")

	// ErrInvalidBlobVersion indicates the blob version cannot be parsed.
	ErrInvalidBlobVersion = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob version")

	// ErrInvalidBlobBase64 indicates the blob payload is not valid base64.
	ErrInvalidBlobBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob base64")
)
