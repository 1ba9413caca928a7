package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futsal-backend/pkg/container"
	"futsal-backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// serve runs the HTTP server until SIGINT/SIGTERM, then drains
// in-flight requests.
func serve(c *container.Container) error {
	router := setupRouter(c)

	srv := &http.Server{
		Addr:         ":" + c.Config.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", map[string]interface{}{
			"addr": srv.Addr,
			"env":  c.Config.App.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("Server stopped gracefully", map[string]interface{}{})
	return nil
}
