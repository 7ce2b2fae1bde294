package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"orderservice/internal/config"
	"orderservice/internal/database"
	"orderservice/internal/repositories"
	"orderservice/internal/services"
	"orderservice/pkg/logger"
	"orderservice/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet; fall back to its default profile.
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if err := logger.Init(cfg.Environment); err != nil {
		logger.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Close()

	// --- Database ---
	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to create database schema", zap.Error(err))
	}
	logger.Info("Database schema ready")

	// --- Order events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		logger.Info("RABBITMQ_URL not set, order events are disabled")
	}

	app := NewApp(repositories.NewGORMOrderRepository(db), publisher)

	// --- Start HTTP Server ---
	logger.Info("Starting server",
		zap.String("addr", cfg.ListenAddr()),
		zap.String("user_service_url", cfg.UserServiceURL),
		zap.String("algorithm", cfg.Algorithm))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			logger.Error("Server stopped listening", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}
