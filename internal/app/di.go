// Package app provides the dependency injection container assembling all
// application components.
package app

import (
	"log/slog"
	"os"
	"sync"

	"github.com/civicgate/trustplane/internal/audit"
	"github.com/civicgate/trustplane/internal/config"
	cryptoService "github.com/civicgate/trustplane/internal/crypto/service"
	gatewayHTTP "github.com/civicgate/trustplane/internal/gateway/http"
	gatewayService "github.com/civicgate/trustplane/internal/gateway/service"
	gatewayUseCase "github.com/civicgate/trustplane/internal/gateway/usecase"
	"github.com/civicgate/trustplane/internal/http"
	"github.com/civicgate/trustplane/internal/metrics"
	otpService "github.com/civicgate/trustplane/internal/otp/service"
	otpUseCase "github.com/civicgate/trustplane/internal/otp/usecase"
	piiHTTP "github.com/civicgate/trustplane/internal/pii/http"
	piiUseCase "github.com/civicgate/trustplane/internal/pii/usecase"
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access; constructors that can
// fail store their error so repeated access replays the same failure.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	auditSink       audit.Sink
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Trust services
	tokenService     trustService.TokenService
	requestSigner    trustService.RequestSigner
	requestValidator trustService.RequestValidator

	// PII protection services
	encryptor  cryptoService.Encryptor
	anonymizer cryptoService.Anonymizer

	// OTP second factor
	challengeRepo otpUseCase.ChallengeRepository
	rateLimitRepo otpUseCase.RateLimitRepository
	codeGenerator otpService.CodeGenerator
	codeDigester  otpService.CodeDigester
	otpDelivery   otpService.DeliveryService
	otpUseCase    otpUseCase.OtpUseCase

	// Gateway authentication
	passwordService gatewayService.PasswordService
	principalRepo   gatewayUseCase.PrincipalRepository
	authUseCase     gatewayUseCase.AuthUseCase

	// Use cases and handlers
	piiUseCase  piiUseCase.PIIUseCase
	authHandler *gatewayHTTP.AuthHandler
	piiHandler  *piiHTTP.PIIHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization guards
	loggerInit           sync.Once
	auditSinkInit        sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	tokenServiceInit     sync.Once
	requestSignerInit    sync.Once
	requestValidatorInit sync.Once
	encryptorInit        sync.Once
	anonymizerInit       sync.Once
	challengeRepoInit    sync.Once
	rateLimitRepoInit    sync.Once
	codeGeneratorInit    sync.Once
	codeDigesterInit     sync.Once
	otpDeliveryInit      sync.Once
	otpUseCaseInit       sync.Once
	passwordServiceInit  sync.Once
	principalRepoInit    sync.Once
	authUseCaseInit      sync.Once
	piiUseCaseInit       sync.Once
	authHandlerInit      sync.Once
	piiHandlerInit       sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// AuditSink returns the audit sink.
func (c *Container) AuditSink() audit.Sink {
	c.auditSinkInit.Do(func() {
		c.auditSink = audit.NewSlogSink(c.Logger())
	})
	return c.auditSink
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			err = providerErr
			c.initErrors["businessMetrics"] = providerErr
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(
			provider.MeterProvider(), c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the main HTTP server with all routes wired.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			err = providerErr
			c.initErrors["metricsServer"] = providerErr
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// initHTTPServer assembles the main HTTP server from its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	authHandler, err := c.AuthHandler()
	if err != nil {
		return nil, err
	}

	piiHandler, err := c.PIIHandler()
	if err != nil {
		return nil, err
	}

	validator, err := c.RequestValidator()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	return http.NewServer(
		c.config,
		c.Logger(),
		authHandler,
		piiHandler,
		validator,
		c.AuditSink(),
		businessMetrics,
		metricsProvider,
	), nil
}

// initLogger creates a structured JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
