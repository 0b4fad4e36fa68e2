// Package config provides application configuration through environment variables.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	apperrors "github.com/civicgate/trustplane/internal/errors"
)

// minSecretBytes is the minimum length for the trust token and gateway
// signature secrets. Anything shorter must abort startup.
const minSecretBytes = 32

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// TrustTokenSecret signs and validates the bearer trust token.
	TrustTokenSecret string
	// TrustTokenExpiration is the lifetime of an issued trust token.
	TrustTokenExpiration time.Duration
	// TrustTokenCookieName is the cookie that carries the trust token.
	TrustTokenCookieName string
	// TrustTokenCookieDomain is the optional cookie domain.
	TrustTokenCookieDomain string
	// TrustTokenCookieSecure marks the trust token cookie as Secure.
	TrustTokenCookieSecure bool

	// GatewaySignatureSecret keys the request-signing HMAC between the
	// gateway and the core. Deliberately independent from TrustTokenSecret.
	GatewaySignatureSecret string
	// GatewaySignatureMaxSkew is the single freshness window for signed
	// request timestamps. Every instance in a deployment must agree on it.
	GatewaySignatureMaxSkew time.Duration

	// InternalAPIKey identifies this service pair on forwarded requests.
	InternalAPIKey string

	// PIIKeys holds the versioned PII encryption keys in the form
	// "version:base64key" separated by commas (e.g., "1:aaa...,2:bbb...").
	PIIKeys string
	// PIIActiveKeyVersion selects the key version used for new ciphertexts.
	PIIActiveKeyVersion uint
	// PIIAlgorithm selects the AEAD algorithm ("aes-gcm" or "chacha20-poly1305").
	PIIAlgorithm string

	// OtpCodeLength is the number of digits in a generated OTP code.
	OtpCodeLength int
	// OtpTTL is the lifetime of an OTP challenge.
	OtpTTL time.Duration
	// OtpMaxAttempts is the number of verification attempts per challenge.
	OtpMaxAttempts int
	// OtpRateLimitRequests is the number of challenges allowed per destination per window.
	OtpRateLimitRequests int
	// OtpRateLimitWindow is the fixed rate-limit window for challenge requests.
	OtpRateLimitWindow time.Duration
	// OtpDeliveryTimeout bounds the out-of-band delivery call.
	OtpDeliveryTimeout time.Duration

	// RateLimitLoginEnabled toggles IP-based rate limiting on the login endpoint.
	RateLimitLoginEnabled bool
	// RateLimitLoginRequestsPerSec is the allowed request rate per client IP.
	RateLimitLoginRequestsPerSec float64
	// RateLimitLoginBurst is the burst size for the login endpoint limiter.
	RateLimitLoginBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Trust token
		TrustTokenSecret:       env.GetString("TRUST_TOKEN_SECRET", ""),
		TrustTokenExpiration:   env.GetDuration("TRUST_TOKEN_EXPIRATION_SECONDS", 3600, time.Second),
		TrustTokenCookieName:   env.GetString("TRUST_TOKEN_COOKIE_NAME", "trust_token"),
		TrustTokenCookieDomain: env.GetString("TRUST_TOKEN_COOKIE_DOMAIN", ""),
		TrustTokenCookieSecure: env.GetBool("TRUST_TOKEN_COOKIE_SECURE", true),

		// Gateway request signing
		GatewaySignatureSecret:  env.GetString("GATEWAY_SIGNATURE_SECRET", ""),
		GatewaySignatureMaxSkew: env.GetDuration("GATEWAY_SIGNATURE_MAX_SKEW_SECONDS", 300, time.Second),

		InternalAPIKey: env.GetString("INTERNAL_API_KEY", ""),

		// PII encryption
		PIIKeys:             env.GetString("PII_KEYS", ""),
		PIIActiveKeyVersion: uint(env.GetInt("PII_ACTIVE_KEY_VERSION", 1)),
		PIIAlgorithm:        env.GetString("PII_ALGORITHM", "aes-gcm"),

		// OTP second factor
		OtpCodeLength:        env.GetInt("OTP_CODE_LENGTH", 6),
		OtpTTL:               env.GetDuration("OTP_TTL_SECONDS", 300, time.Second),
		OtpMaxAttempts:       env.GetInt("OTP_MAX_ATTEMPTS", 3),
		OtpRateLimitRequests: env.GetInt("OTP_RATE_LIMIT_REQUESTS", 3),
		OtpRateLimitWindow:   env.GetDuration("OTP_RATE_LIMIT_WINDOW_SECONDS", 60, time.Second),
		OtpDeliveryTimeout:   env.GetDuration("OTP_DELIVERY_TIMEOUT_SECONDS", 10, time.Second),

		// Rate limiting for the login endpoint (IP-based, unauthenticated)
		RateLimitLoginEnabled:        env.GetBool("RATE_LIMIT_LOGIN_ENABLED", true),
		RateLimitLoginRequestsPerSec: env.GetFloat64("RATE_LIMIT_LOGIN_REQUESTS_PER_SEC", 5.0),
		RateLimitLoginBurst:          env.GetInt("RATE_LIMIT_LOGIN_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "trustplane"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Shutdown
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),
	}
}

// Validate enforces the fail-closed startup contract: the process must refuse
// to start when any secret is absent or below the minimum length. It returns
// a wrapped ErrConfiguration on the first fatal problem and a list of
// non-fatal warnings for the caller to log.
func (c *Config) Validate() (warnings []string, err error) {
	if len(c.TrustTokenSecret) < minSecretBytes {
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("TRUST_TOKEN_SECRET must be at least %d bytes", minSecretBytes),
		)
	}

	if len(c.GatewaySignatureSecret) < minSecretBytes {
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("GATEWAY_SIGNATURE_SECRET must be at least %d bytes", minSecretBytes),
		)
	}

	if _, err := c.ParsePIIKeys(); err != nil {
		return nil, err
	}

	switch c.PIIAlgorithm {
	case "aes-gcm", "chacha20-poly1305":
	default:
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("unsupported PII_ALGORITHM %q", c.PIIAlgorithm),
		)
	}

	if c.GatewaySignatureMaxSkew <= 0 {
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			"GATEWAY_SIGNATURE_MAX_SKEW_SECONDS must be positive",
		)
	}

	if c.OtpCodeLength < 4 || c.OtpCodeLength > 10 {
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			"OTP_CODE_LENGTH must be between 4 and 10",
		)
	}

	// The two shared secrets are configurable independently; setting them
	// equal collapses the trust boundary into a single secret.
	if c.TrustTokenSecret == c.GatewaySignatureSecret {
		warnings = append(
			warnings,
			"TRUST_TOKEN_SECRET and GATEWAY_SIGNATURE_SECRET are equal: compromising one secret compromises both trust boundaries",
		)
	}

	return warnings, nil
}

// ParsePIIKeys parses PIIKeys into a version-to-key map. Each entry must be
// "version:base64key" with exactly 32 decoded bytes, and the active key
// version must be present in the map.
func (c *Config) ParsePIIKeys() (map[uint][]byte, error) {
	if strings.TrimSpace(c.PIIKeys) == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "PII_KEYS must not be empty")
	}

	keys := make(map[uint][]byte)
	for _, entry := range strings.Split(c.PIIKeys, ",") {
		entry = strings.TrimSpace(entry)
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, apperrors.Wrap(
				apperrors.ErrConfiguration,
				fmt.Sprintf("PII_KEYS entry %q must be in version:base64key form", entry),
			)
		}

		version, err := strconv.ParseUint(parts[0], 10, 0)
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.ErrConfiguration,
				fmt.Sprintf("PII_KEYS entry %q has a non-numeric version", entry),
			)
		}

		key, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.ErrConfiguration,
				fmt.Sprintf("PII_KEYS entry for version %d is not valid base64", version),
			)
		}
		if len(key) != 32 {
			return nil, apperrors.Wrap(
				apperrors.ErrConfiguration,
				fmt.Sprintf("PII_KEYS entry for version %d must decode to 32 bytes", version),
			)
		}

		if _, exists := keys[uint(version)]; exists {
			return nil, apperrors.Wrap(
				apperrors.ErrConfiguration,
				fmt.Sprintf("PII_KEYS declares version %d twice", version),
			)
		}
		keys[uint(version)] = key
	}

	if _, ok := keys[c.PIIActiveKeyVersion]; !ok {
		return nil, apperrors.Wrap(
			apperrors.ErrConfiguration,
			fmt.Sprintf("PII_ACTIVE_KEY_VERSION %d is not present in PII_KEYS", c.PIIActiveKeyVersion),
		)
	}

	return keys, nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
