package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/civicgate/trustplane/internal/errors"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// requestSigner implements RequestSigner using HMAC-SHA256 over the canonical
// signed fields.
//
// The signing key is derived from the configured shared secret with
// HKDF-SHA256, separating this key's usage from any other use of the secret.
// The secret is independent from the trust token secret so compromising one
// does not compromise the other.
type requestSigner struct {
	key    []byte
	apiKey string
}

// signingKeyInfo versions the HKDF derivation for future algorithm changes.
var signingKeyInfo = []byte("gateway-request-signing-v1")

// NewRequestSigner creates the gateway-side request signer.
// Fails closed when the shared secret is shorter than 32 bytes.
func NewRequestSigner(secret, apiKey string) (RequestSigner, error) {
	key, err := deriveSigningKey(secret)
	if err != nil {
		return nil, err
	}
	return &requestSigner{key: key, apiKey: apiKey}, nil
}

// Sign computes Base64(HMAC-SHA256(key, timestamp:method:path:subject:role)).
func (s *requestSigner) Sign(request trustDomain.SignedRequest) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(request.Canonical()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Annotate signs the request at the given time and injects the signature plus
// the four signed fields (and the API key, when configured) as headers.
func (s *requestSigner) Annotate(
	header http.Header,
	method, path, subject string,
	role trustDomain.Role,
	now time.Time,
) {
	request := trustDomain.SignedRequest{
		Method:          method,
		Path:            path,
		TimestampMillis: now.UnixMilli(),
		Subject:         subject,
		Role:            role,
	}

	header.Set(trustDomain.HeaderUserID, subject)
	header.Set(trustDomain.HeaderUserRole, string(role))
	header.Set(trustDomain.HeaderTimestamp, strconv.FormatInt(request.TimestampMillis, 10))
	header.Set(trustDomain.HeaderSignature, s.Sign(request))
	if s.apiKey != "" {
		header.Set(trustDomain.HeaderAPIKey, s.apiKey)
	}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// shared secret. Enforces the minimum secret length on both sides of the
// trust boundary.
func deriveSigningKey(secret string) ([]byte, error) {
	if len(secret) < minSecretBytes {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "gateway signature secret too short")
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, signingKeyInfo)
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}

	return key, nil
}
