package ordering

import (
	"context"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
)

// CatalogStore is the slice of the catalog the ordering core depends on.
// DecrementIfAvailable must be a single conditioned operation: a concurrent
// decrement that already consumed the stock makes it return false rather than
// drive the quantity negative.
type CatalogStore interface {
	FindByID(ctx context.Context, id string) (*models.FoodItem, error)
	DecrementIfAvailable(ctx context.Context, id string, qty int) (bool, error)
	Increment(ctx context.Context, id string, qty int) error
}

// OrderStore persists orders. CancelIfCancellable, MarkDelivered and
// UpdateStatusFrom are conditioned writes returning nil when nothing matched.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	CancelIfCancellable(ctx context.Context, orderID, userID string, now time.Time) (*models.Order, error)
	MarkDelivered(ctx context.Context, orderID string, now time.Time) (*models.Order, error)
	UpdateStatusFrom(ctx context.Context, orderID string, from, to models.Status) (*models.Order, error)
}
