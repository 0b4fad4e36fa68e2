// Package http assembles the public HTTP surface: the unauthenticated auth
// endpoints, the trust boundary, and the protected PII endpoints behind it.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/civicgate/trustplane/internal/audit"
	"github.com/civicgate/trustplane/internal/config"
	gatewayHTTP "github.com/civicgate/trustplane/internal/gateway/http"
	"github.com/civicgate/trustplane/internal/metrics"
	piiHTTP "github.com/civicgate/trustplane/internal/pii/http"
	trustHTTP "github.com/civicgate/trustplane/internal/trust/http"
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// Server is the main HTTP server.
type Server struct {
	config          *config.Config
	logger          *slog.Logger
	server          *http.Server
	authHandler     *gatewayHTTP.AuthHandler
	piiHandler      *piiHTTP.PIIHandler
	validator       trustService.RequestValidator
	auditSink       audit.Sink
	businessMetrics metrics.BusinessMetrics
	metricsProvider *metrics.Provider
}

// NewServer creates the main HTTP server with all routes wired.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authHandler *gatewayHTTP.AuthHandler,
	piiHandler *piiHTTP.PIIHandler,
	validator trustService.RequestValidator,
	auditSink audit.Sink,
	businessMetrics metrics.BusinessMetrics,
	metricsProvider *metrics.Provider,
) *Server {
	s := &Server{
		config:          cfg,
		logger:          logger,
		authHandler:     authHandler,
		piiHandler:      piiHandler,
		validator:       validator,
		auditSink:       auditSink,
		businessMetrics: businessMetrics,
		metricsProvider: metricsProvider,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.createRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// createRouter builds the gin engine with middleware and routes.
func (s *Server) createRouter() *gin.Engine {
	gin.SetMode(s.config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.config.MetricsEnabled && s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			s.metricsProvider.MeterProvider(), s.config.MetricsNamespace,
		))
	}

	// The trust boundary guards everything below; the public path allow-list
	// inside the validator exempts /health, /ready, and /v1/auth.
	router.Use(trustHTTP.TrustMiddleware(s.validator, s.auditSink, s.businessMetrics, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/v1/auth")
	if s.config.RateLimitLoginEnabled {
		auth.Use(gatewayHTTP.LoginRateLimitMiddleware(
			s.config.RateLimitLoginRequestsPerSec, s.config.RateLimitLoginBurst, s.logger,
		))
	}
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/verify", s.authHandler.Verify)
	auth.POST("/logout", s.authHandler.Logout)

	// Staff surface: PII protection for internal services. Reachable by
	// ANALYST and ADMIN identities.
	staff := router.Group("/staff")
	staff.POST("/pii/encrypt", s.piiHandler.Encrypt)
	staff.POST("/pii/decrypt", s.piiHandler.Decrypt)
	staff.POST("/pii/anonymize", s.piiHandler.Anonymize)

	// Admin surface: principal directory management.
	admin := router.Group("/admin")
	admin.POST("/principals", s.authHandler.CreatePrincipal)

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness. All state is process-local, so
// readiness follows liveness; the endpoint exists for probe symmetry.
func (s *Server) readinessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
