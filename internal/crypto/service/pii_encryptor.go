package service

import (
	"fmt"

	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
)

// nonceSize is the nonce length shared by both supported AEAD algorithms.
const nonceSize = 12

// piiEncryptor implements Encryptor over a set of versioned keys.
//
// One version is active for encryption at a time; decryption honors whatever
// version a blob records, which keeps old ciphertexts readable across a key
// rotation until they are re-encrypted out of band.
type piiEncryptor struct {
	ciphers       map[uint]AEADCipher
	activeVersion uint
}

// NewPIIEncryptor builds an Encryptor from versioned key material.
//
// Every key must be 32 bytes and the active version must be present in the
// key set; both conditions are validated at construction so a misconfigured
// process fails before accepting traffic.
func NewPIIEncryptor(
	keys map[uint][]byte,
	activeVersion uint,
	algorithm cryptoDomain.Algorithm,
	factory CipherFactory,
) (Encryptor, error) {
	if len(keys) == 0 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if _, ok := keys[activeVersion]; !ok {
		return nil, fmt.Errorf("%w: active version %d not loaded", cryptoDomain.ErrUnknownKeyVersion, activeVersion)
	}

	ciphers := make(map[uint]AEADCipher, len(keys))
	for version, key := range keys {
		cipher, err := factory.CreateCipher(key, algorithm)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher for key version %d: %w", version, err)
		}
		ciphers[version] = cipher
	}

	return &piiEncryptor{
		ciphers:       ciphers,
		activeVersion: activeVersion,
	}, nil
}

// Encrypt protects plaintext under the active key version.
// The key version is bound into the AAD so a blob relabeled with a different
// version fails authentication instead of decrypting under the wrong key.
func (e *piiEncryptor) Encrypt(plaintext []byte) (cryptoDomain.EncryptedBlob, error) {
	cipher := e.ciphers[e.activeVersion]

	ciphertext, nonce, err := cipher.Encrypt(plaintext, versionAAD(e.activeVersion))
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	return cryptoDomain.EncryptedBlob{
		KeyVersion: e.activeVersion,
		Payload:    payload,
	}, nil
}

// Decrypt recovers the plaintext of a blob using the key version it records.
// Fails with ErrUnknownKeyVersion when the version is not loaded and with
// ErrDecryptionFailed on any authentication failure. Callers must propagate
// these errors; degrading to a placeholder value hides tampering.
func (e *piiEncryptor) Decrypt(blob cryptoDomain.EncryptedBlob) ([]byte, error) {
	cipher, ok := e.ciphers[blob.KeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: version %d", cryptoDomain.ErrUnknownKeyVersion, blob.KeyVersion)
	}

	if len(blob.Payload) < nonceSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	nonce := blob.Payload[:nonceSize]
	ciphertext := blob.Payload[nonceSize:]

	return cipher.Decrypt(ciphertext, nonce, versionAAD(blob.KeyVersion))
}

// EncryptString protects a string and returns the serialized blob form.
func (e *piiEncryptor) EncryptString(plaintext string) (string, error) {
	blob, err := e.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return blob.String(), nil
}

// DecryptString parses a serialized blob and recovers the plaintext string.
func (e *piiEncryptor) DecryptString(content string) (string, error) {
	blob, err := cryptoDomain.ParseEncryptedBlob(content)
	if err != nil {
		return "", err
	}

	plaintext, err := e.Decrypt(blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// versionAAD renders the key version as additional authenticated data.
func versionAAD(version uint) []byte {
	return []byte(fmt.Sprintf("pii-key-v%d", version))
}
