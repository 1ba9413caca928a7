package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"futsal-backend/internal/config"
	"futsal-backend/pkg/container"
	"futsal-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	if err := serve(c); err != nil {
		logger.Error("server exited with error", err)
		os.Exit(1)
	}
}
