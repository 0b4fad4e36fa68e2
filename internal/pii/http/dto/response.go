package dto

// EncryptResponse carries the versioned ciphertext blob.
type EncryptResponse struct {
	Content string `json:"content"`
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// AnonymizeResponse carries the deterministic digest.
type AnonymizeResponse struct {
	Digest string `json:"digest"`
}
