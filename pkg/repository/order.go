package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderStore persists orders and their embedded line items.
type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(repo *MongoRepository) *OrderStore {
	return &OrderStore{
		collection: repo.database.Collection(orderCollection),
	}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// FindByID returns nil when no order exists with the given ID.
func (s *OrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// CancelIfCancellable flips the order to cancelled in a single conditioned
// write: only an order owned by userID and still pending or processing
// matches. It returns the updated order, or nil when nothing matched, so the
// first of two racing cancellations wins and the second observes nil.
func (s *OrderStore) CancelIfCancellable(ctx context.Context, orderID, userID string, now time.Time) (*models.Order, error) {
	filter := bson.M{
		"_id":     orderID,
		"user_id": userID,
		"status":  bson.M{"$in": bson.A{models.StatusPending, models.StatusProcessing}},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.StatusCancelled,
		"cancelled_at": now,
		"updated_at":   now,
	}}
	return s.findOneAndUpdate(ctx, filter, update)
}

// MarkDelivered stamps the order completed with the given delivery time.
// Returns nil when the order does not exist.
func (s *OrderStore) MarkDelivered(ctx context.Context, orderID string, now time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":       models.StatusCompleted,
		"delivered_at": now,
		"updated_at":   now,
	}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": orderID}, update)
}

// UpdateStatusFrom writes a new status conditioned on the order still being
// in the status the caller validated against, so of two racing transitions
// only the first lands; the loser observes nil. Transition validation itself
// is the lifecycle manager's job.
func (s *OrderStore) UpdateStatusFrom(ctx context.Context, orderID string, from, to models.Status) (*models.Order, error) {
	filter := bson.M{
		"_id":    orderID,
		"status": from,
	}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}}
	return s.findOneAndUpdate(ctx, filter, update)
}

// DeleteCompletedBefore removes completed orders delivered at or before the
// cutoff and reports how many were removed.
func (s *OrderStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, bson.M{
		"status":       models.StatusCompleted,
		"delivered_at": bson.M{"$lte": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed orders: %w", err)
	}
	return result.DeletedCount, nil
}

func (s *OrderStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &order, nil
}
