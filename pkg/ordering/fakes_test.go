package ordering

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"go.uber.org/zap"
)

// fakeCatalog is an in-memory CatalogStore with the same conditioned
// decrement guarantee as the Mongo store.
type fakeCatalog struct {
	mu    sync.Mutex
	items map[string]*models.FoodItem

	// staleReads inflates the quantity reported by FindByID for an item,
	// simulating a concurrent order that consumed stock between the
	// service's validation read and the decrement.
	staleReads map[string]int
	// incrementErrs makes Increment fail for the given item IDs.
	incrementErrs map[string]error
	// honorCtx makes every method fail once the context is cancelled,
	// mirroring how the Mongo driver surfaces context errors.
	honorCtx bool

	increments map[string]int
}

func newFakeCatalog(items ...*models.FoodItem) *fakeCatalog {
	f := &fakeCatalog{
		items:         make(map[string]*models.FoodItem),
		staleReads:    make(map[string]int),
		incrementErrs: make(map[string]error),
		increments:    make(map[string]int),
	}
	for _, item := range items {
		copied := *item
		f.items[item.ID] = &copied
	}
	return f
}

func (f *fakeCatalog) FindByID(ctx context.Context, id string) (*models.FoodItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	if inflated, ok := f.staleReads[id]; ok {
		copied.Quantity = inflated
	}
	return &copied, nil
}

func (f *fakeCatalog) DecrementIfAvailable(ctx context.Context, id string, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.honorCtx && ctx.Err() != nil {
		return false, ctx.Err()
	}
	item, ok := f.items[id]
	if !ok || item.Quantity < qty {
		return false, nil
	}
	item.Quantity -= qty
	if item.Quantity < 0 {
		return false, fmt.Errorf("quantity went negative for %s", id)
	}
	return true, nil
}

func (f *fakeCatalog) Increment(ctx context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.honorCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	if err, ok := f.incrementErrs[id]; ok {
		return err
	}
	item, ok := f.items[id]
	if !ok {
		return fmt.Errorf("no such item: %s", id)
	}
	item.Quantity += qty
	f.increments[id] += qty
	return nil
}

func (f *fakeCatalog) quantity(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].Quantity
}

// fakeOrders is an in-memory OrderStore whose conditioned writes are atomic
// under its mutex, mirroring the single-document atomicity of Mongo.
type fakeOrders struct {
	mu        sync.Mutex
	orders    map[string]*models.Order
	insertErr error

	// beforeStatusWrite, when set, runs once before the next conditioned
	// status write, letting tests interleave a competing transition.
	beforeStatusWrite func()
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[string]*models.Order)}
}

func (f *fakeOrders) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrders) CancelIfCancellable(_ context.Context, orderID, userID string, now time.Time) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, nil
	}
	if order.Status != models.StatusPending && order.Status != models.StatusProcessing {
		return nil, nil
	}
	order.Status = models.StatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) MarkDelivered(_ context.Context, orderID string, now time.Time) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	order.Status = models.StatusCompleted
	order.DeliveredAt = &now
	order.UpdatedAt = now
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) UpdateStatusFrom(_ context.Context, orderID string, from, to models.Status) (*models.Order, error) {
	if hook := f.beforeStatusWrite; hook != nil {
		f.beforeStatusWrite = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.Status != from {
		return nil, nil
	}
	order.Status = to
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func newTestService(catalog *fakeCatalog, orders *fakeOrders) *Service {
	logger := zap.NewNop()
	svc := NewService(catalog, orders, NewCompensatingExecutor(catalog, logger), logger)
	svc.randInt = func(n int) int { return 0 }
	return svc
}
