package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/config"
	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"github.com/go-redis/redis/v8"
)

const foodCacheTTL = 5 * time.Minute

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Cache for catalog reads. Keys are invalidated on every catalog or stock
// mutation, including reservation decrements.

func foodKey(id string) string {
	return fmt.Sprintf("food:%s", id)
}

const foodListKey = "food:all"

func (r *RedisRepository) CacheFood(ctx context.Context, item *models.FoodItem) error {
	return r.SetJSON(ctx, foodKey(item.ID), item, foodCacheTTL)
}

func (r *RedisRepository) GetFoodCache(ctx context.Context, id string) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.GetJSON(ctx, foodKey(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RedisRepository) CacheFoodList(ctx context.Context, items []models.FoodItem) error {
	return r.SetJSON(ctx, foodListKey, items, foodCacheTTL)
}

func (r *RedisRepository) GetFoodListCache(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.GetJSON(ctx, foodListKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RedisRepository) InvalidateFood(ctx context.Context, id string) error {
	return r.Del(ctx, foodKey(id), foodListKey)
}
