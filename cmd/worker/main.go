package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"futsal-backend/internal/config"
	"futsal-backend/pkg/logger"
)

// The worker process runs the asynq server (task execution) and the
// scheduler (cron entries) side by side, separate from the API.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	w, err := newWorker(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize worker", err)
		os.Exit(1)
	}
	defer w.Cleanup()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 2)
	go func() { errCh <- w.RunServer() }()
	go func() { errCh <- w.RunScheduler() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("worker exited with error", err)
			w.Shutdown()
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	w.Shutdown()
	logger.Info("Worker stopped gracefully", map[string]interface{}{})
}
