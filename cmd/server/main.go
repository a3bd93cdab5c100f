package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/gateway"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/config"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/ordering"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/repository"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/sweeper"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/server-config.yaml", "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := newLogger(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting food ordering service",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// MongoDB
	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoRepo.Close(ctx)
	}()

	// Redis
	redisRepo := repository.NewRedisRepository(&cfg.Redis)
	defer redisRepo.Close()

	// Ping dependencies
	ctx := context.Background()
	if err := mongoRepo.Ping(ctx); err != nil {
		logger.Fatal("MongoDB connection failed", zap.Error(err))
	}
	if err := redisRepo.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}

	foods := repository.NewFoodStore(mongoRepo, redisRepo)
	orders := repository.NewOrderStore(mongoRepo)

	// Reservation executor strategy, per deployment config
	var exec ordering.Executor
	if cfg.Orders.Transactions {
		exec = ordering.NewTransactionalExecutor(mongoRepo.Client(), foods, logger)
		logger.Info("Using transactional reservation executor")
	} else {
		exec = ordering.NewCompensatingExecutor(foods, logger)
		logger.Info("Using compensating reservation executor")
	}

	orderService := ordering.NewService(foods, orders, exec, logger)

	// Retention sweeper
	sw := sweeper.New(orders, cfg.Orders.SweepInterval, cfg.Orders.RetentionWindow, logger)
	sw.Start()
	defer sw.Stop()

	// HTTP gateway
	gw := gateway.NewGateway(cfg, logger, foods, redisRepo, orderService)
	gw.SetupRoutes()

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Service stopped")
}

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = level
	}
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	return zapCfg.Build()
}
