package main

import (
	"context"
	"log"
	"os"

	"github.com/kursadbilgin/notification-dispatch/internal/config"
	"github.com/kursadbilgin/notification-dispatch/internal/demo"
	"github.com/kursadbilgin/notification-dispatch/internal/observability"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	runner, err := demo.NewRunner(os.Stdout, cfg, logger)
	if err != nil {
		logger.Fatal("demo initialization failed", zap.Error(err))
	}

	if _, err := runner.Run(context.Background()); err != nil {
		logger.Fatal("demo run failed", zap.Error(err))
	}
}
