package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Serve listens on cfg.Address until ctx is cancelled, then drains in-flight
// requests before returning.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}
	return serveListener(ctx, logger, listener, cfg, version)
}

func serveListener(ctx context.Context, logger *zap.Logger, listener net.Listener, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Handler:           NewHandler(logger, cfg.UploadSizeBytes(), version, cfg.AllowedOrigins...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server listening",
		zap.String("op", "server.Serve"),
		zap.String("address", listener.Addr().String()),
		zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		<-serveErr
		logger.Info("server stopped",
			zap.String("op", "server.Serve"),
		)
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}
