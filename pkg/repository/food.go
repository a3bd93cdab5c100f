package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FoodStore persists the catalog in the food_items collection. Stock mutation
// goes through DecrementIfAvailable/Increment so that quantity never drops
// below zero, even under concurrent orders across process instances.
type FoodStore struct {
	collection *mongo.Collection
	cache      *RedisRepository
}

func NewFoodStore(repo *MongoRepository, cache *RedisRepository) *FoodStore {
	return &FoodStore{
		collection: repo.database.Collection(foodCollection),
		cache:      cache,
	}
}

func (s *FoodStore) Insert(ctx context.Context, item *models.FoodItem) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert food item: %w", err)
	}
	s.invalidate(ctx, item.ID)
	return nil
}

func (s *FoodStore) FindAll(ctx context.Context) ([]models.FoodItem, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.FoodItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode food items: %w", err)
	}
	return items, nil
}

// FindByID returns nil when no item exists with the given ID.
func (s *FoodStore) FindByID(ctx context.Context, id string) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food item: %w", err)
	}
	return &item, nil
}

func (s *FoodStore) Update(ctx context.Context, item *models.FoodItem) error {
	item.UpdatedAt = time.Now()
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update food item: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	s.invalidate(ctx, item.ID)
	return nil
}

func (s *FoodStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	s.invalidate(ctx, id)
	return nil
}

// DecrementIfAvailable atomically decrements the item's quantity by qty,
// conditioned on enough stock still being present at write time. It returns
// false when the guard fails, so a racing order cannot drive stock negative.
func (s *FoodStore) DecrementIfAvailable(ctx context.Context, id string, qty int) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"quantity": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.ModifiedCount == 0 {
		return false, nil
	}
	s.invalidate(ctx, id)
	return true, nil
}

// Increment restores qty units of stock, used by reservation rollback and
// order cancellation.
func (s *FoodStore) Increment(ctx context.Context, id string, qty int) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"quantity": qty},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// SetMissingQuantities backfills the default stock count on items whose
// quantity is absent, null or not numeric. Used by cmd/restock.
func (s *FoodStore) SetMissingQuantities(ctx context.Context, def int) (int64, error) {
	result, err := s.collection.UpdateMany(ctx,
		bson.M{"$or": bson.A{
			bson.M{"quantity": bson.M{"$exists": false}},
			bson.M{"quantity": bson.M{"$type": "null"}},
			bson.M{"quantity": bson.M{"$not": bson.M{"$type": "number"}}},
		}},
		bson.M{"$set": bson.M{"quantity": def, "updated_at": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("failed to backfill quantities: %w", err)
	}
	return result.ModifiedCount, nil
}

func (s *FoodStore) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	// Misses fall through to Mongo, so a failed invalidation is not fatal.
	_ = s.cache.InvalidateFood(ctx, id)
}
