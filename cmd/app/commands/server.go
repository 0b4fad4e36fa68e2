// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/civicgate/trustplane/internal/app"
	"github.com/civicgate/trustplane/internal/config"
)

// RunServer starts the HTTP server with graceful shutdown support.
//
// Loads configuration, validates the fail-closed startup contract, initializes
// the DI container, and starts the API and metrics servers. Blocks until
// receiving SIGINT/SIGTERM or encountering a fatal error.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	// Fail closed: a process with missing or weak secrets must not serve a
	// single request.
	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	for _, warning := range warnings {
		logger.Warn(warning)
	}

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	// Wait for a shutdown signal or a server failure, then stop both servers
	// within the configured timeout.
	<-groupCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown", slog.Any("error", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown", slog.Any("error", err))
		}
	}

	return group.Wait()
}
