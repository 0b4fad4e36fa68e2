package app

import (
	"bytes"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgate/trustplane/internal/config"
)

func testConfig() *config.Config {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 32))
	return &config.Config{
		ServerHost:                   "127.0.0.1",
		ServerPort:                   8080,
		LogLevel:                     "error",
		TrustTokenSecret:             "it-is-a-very-secret-token-value-1234",
		TrustTokenExpiration:         time.Hour,
		TrustTokenCookieName:         "trust_token",
		GatewaySignatureSecret:       "another-very-secret-signing-value-5678",
		GatewaySignatureMaxSkew:      300 * time.Second,
		InternalAPIKey:               "internal-api-key",
		PIIKeys:                      "1:" + key,
		PIIActiveKeyVersion:          1,
		PIIAlgorithm:                 "aes-gcm",
		OtpCodeLength:                6,
		OtpTTL:                       5 * time.Minute,
		OtpMaxAttempts:               3,
		OtpRateLimitRequests:         3,
		OtpRateLimitWindow:           time.Minute,
		OtpDeliveryTimeout:           10 * time.Second,
		RateLimitLoginEnabled:        true,
		RateLimitLoginRequestsPerSec: 5.0,
		RateLimitLoginBurst:          10,
		MetricsEnabled:               false,
		MetricsNamespace:             "trustplane",
		MetricsPort:                  8081,
		ShutdownTimeout:              30 * time.Second,
	}
}

func TestContainer(t *testing.T) {
	t.Run("components are lazy singletons", func(t *testing.T) {
		container := NewContainer(testConfig())

		assert.Same(t, container.Logger(), container.Logger())
		assert.Equal(t, container.AuditSink(), container.AuditSink())
		assert.Same(t, container.PrincipalRepository(), container.PrincipalRepository())
		assert.Same(t, container.ChallengeRepository(), container.ChallengeRepository())

		first, err := container.AuthUseCase()
		require.NoError(t, err)
		second, err := container.AuthUseCase()
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("http server assembles with a valid config", func(t *testing.T) {
		container := NewContainer(testConfig())

		server, err := container.HTTPServer()
		require.NoError(t, err)
		assert.NotNil(t, server.GetHandler())
	})

	t.Run("metrics server is nil when metrics are disabled", func(t *testing.T) {
		container := NewContainer(testConfig())

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, metricsServer)
	})

	t.Run("metrics server is built when metrics are enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		require.NotNil(t, metricsServer)
		assert.NotNil(t, metricsServer.GetHandler())
	})

	t.Run("constructor errors replay on every access", func(t *testing.T) {
		cfg := testConfig()
		cfg.TrustTokenSecret = "too-short"
		container := NewContainer(cfg)

		_, err := container.TokenService()
		require.Error(t, err)

		_, again := container.TokenService()
		require.Error(t, again)
		assert.Equal(t, err.Error(), again.Error())
	})

	t.Run("bad pii keys surface through dependents", func(t *testing.T) {
		cfg := testConfig()
		cfg.PIIKeys = "not-a-key-entry"
		container := NewContainer(cfg)

		_, err := container.Encryptor()
		require.Error(t, err)

		_, err = container.PIIUseCase()
		require.Error(t, err)

		_, err = container.HTTPServer()
		require.Error(t, err)
	})
}
