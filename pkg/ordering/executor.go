package ordering

import (
	"context"
	"errors"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Executor applies an order's stock decrements and its persistence step as one
// all-or-nothing unit. Both implementations give the same observable
// guarantee: either every decrement and the insert take effect, or none do.
type Executor interface {
	Execute(ctx context.Context, items []models.OrderItem, persist func(ctx context.Context) error) error
}

// CompensatingExecutor reserves stock item by item and undoes the reserved
// prefix when a later decrement or the persistence step fails. For
// deployments whose storage cannot run multi-document transactions.
type CompensatingExecutor struct {
	catalog CatalogStore
	logger  *zap.Logger
}

func NewCompensatingExecutor(catalog CatalogStore, logger *zap.Logger) *CompensatingExecutor {
	return &CompensatingExecutor{catalog: catalog, logger: logger}
}

func (e *CompensatingExecutor) Execute(ctx context.Context, items []models.OrderItem, persist func(ctx context.Context) error) error {
	reserved := make([]models.OrderItem, 0, len(items))

	// Rollback must still run when the request context is already
	// cancelled, e.g. after a client disconnect failed the insert.
	rollbackCtx := context.WithoutCancel(ctx)

	// Restores the reserved prefix exactly once; a second call is a no-op.
	rollback := func() {
		for _, item := range reserved {
			if err := e.catalog.Increment(rollbackCtx, item.FoodID, item.Quantity); err != nil {
				e.logger.Error("failed to roll back reservation",
					zap.String("food_id", item.FoodID),
					zap.Int("quantity", item.Quantity),
					zap.Error(err))
			}
		}
		reserved = nil
	}

	for _, item := range items {
		ok, err := e.catalog.DecrementIfAvailable(ctx, item.FoodID, item.Quantity)
		if err != nil {
			rollback()
			return &PersistenceError{Err: err}
		}
		if !ok {
			available := 0
			if current, err := e.catalog.FindByID(ctx, item.FoodID); err == nil && current != nil {
				available = current.Quantity
			}
			rollback()
			return &InsufficientStockError{
				FoodID:    item.FoodID,
				Name:      item.Name,
				Available: available,
				Requested: item.Quantity,
			}
		}
		reserved = append(reserved, item)
	}

	if err := persist(ctx); err != nil {
		rollback()
		return &PersistenceError{Err: err}
	}
	return nil
}

// TransactionalExecutor wraps the decrements and the insert in a single Mongo
// transaction. Requires a replica set deployment.
type TransactionalExecutor struct {
	client  *mongo.Client
	catalog CatalogStore
	logger  *zap.Logger
}

func NewTransactionalExecutor(client *mongo.Client, catalog CatalogStore, logger *zap.Logger) *TransactionalExecutor {
	return &TransactionalExecutor{client: client, catalog: catalog, logger: logger}
}

func (e *TransactionalExecutor) Execute(ctx context.Context, items []models.OrderItem, persist func(ctx context.Context) error) error {
	session, err := e.client.StartSession()
	if err != nil {
		return &PersistenceError{Err: err}
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, item := range items {
			ok, err := e.catalog.DecrementIfAvailable(sc, item.FoodID, item.Quantity)
			if err != nil {
				return nil, err
			}
			if !ok {
				available := 0
				if current, err := e.catalog.FindByID(sc, item.FoodID); err == nil && current != nil {
					available = current.Quantity
				}
				return nil, &InsufficientStockError{
					FoodID:    item.FoodID,
					Name:      item.Name,
					Available: available,
					Requested: item.Quantity,
				}
			}
		}
		return nil, persist(sc)
	})
	if err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			return insufficient
		}
		return &PersistenceError{Err: err}
	}
	return nil
}
