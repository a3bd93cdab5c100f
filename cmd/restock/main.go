// Restock backfills the default stock count on catalog items whose quantity
// is missing or malformed, typically after a hand-edited import.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/config"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/repository"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/server-config.yaml", "path to config file")
	quantity := flag.Int("quantity", models.DefaultQuantity, "stock count to backfill")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoRepo.Close(ctx)

	if err := mongoRepo.Ping(ctx); err != nil {
		logger.Fatal("MongoDB connection failed", zap.Error(err))
	}

	foods := repository.NewFoodStore(mongoRepo, nil)
	updated, err := foods.SetMissingQuantities(ctx, *quantity)
	if err != nil {
		logger.Fatal("Failed to backfill quantities", zap.Error(err))
	}

	logger.Info("Backfilled food item quantities",
		zap.Int64("updated", updated),
		zap.Int("quantity", *quantity))
}
