package ordering

import (
	"context"
	"math/rand"
	"time"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Estimated delivery offset: 25 to 30 whole minutes, kept deliberately loose.
const (
	etaBaseMinutes   = 25
	etaSpreadMinutes = 6
)

// Service is the ordering core: it validates placement requests, reserves
// stock through an Executor, and drives the order status lifecycle.
type Service struct {
	catalog CatalogStore
	orders  OrderStore
	exec    Executor
	logger  *zap.Logger

	now     func() time.Time
	randInt func(n int) int
}

func NewService(catalog CatalogStore, orders OrderStore, exec Executor, logger *zap.Logger) *Service {
	return &Service{
		catalog: catalog,
		orders:  orders,
		exec:    exec,
		logger:  logger,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// RequestedItem is one entry of a placement request, referencing a catalog
// item by ID.
type RequestedItem struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest carries the delivery metadata and requested items for a
// new order.
type PlaceOrderRequest struct {
	UserID        string
	Name          string
	Address       string
	Contact       string
	Location      string
	PaymentMethod string
	Items         []RequestedItem
}

// PlaceOrder validates every requested item against the catalog, reserves
// stock and persists the order as one all-or-nothing unit. Validation aborts
// before any mutation; a failure after stock was reserved rolls the
// reservation back.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	processed := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if _, err := uuid.Parse(item.FoodID); err != nil {
			return nil, &InvalidReferenceError{FoodID: item.FoodID}
		}

		food, err := s.catalog.FindByID(ctx, item.FoodID)
		if err != nil {
			return nil, &PersistenceError{Err: err}
		}
		if food == nil {
			return nil, &NotFoundError{Kind: "food item", ID: item.FoodID}
		}

		if item.Quantity < 1 {
			return nil, &InvalidQuantityError{FoodID: food.ID, Name: food.Name}
		}
		if item.Quantity > food.Quantity {
			return nil, &InsufficientStockError{
				FoodID:    food.ID,
				Name:      food.Name,
				Available: food.Quantity,
				Requested: item.Quantity,
			}
		}

		// Snapshot name, image and price so later catalog edits never
		// alter this order.
		processed = append(processed, models.OrderItem{
			FoodID:   food.ID,
			Name:     food.Name,
			Image:    food.Image,
			Price:    food.Price,
			Quantity: item.Quantity,
		})
	}

	now := s.now()
	etaMinutes := etaBaseMinutes + s.randInt(etaSpreadMinutes)

	order := &models.Order{
		ID:                    uuid.NewString(),
		UserID:                req.UserID,
		Name:                  req.Name,
		Address:               req.Address,
		Contact:               req.Contact,
		Location:              req.Location,
		PaymentMethod:         req.PaymentMethod,
		Status:                models.StatusPending,
		EstimatedDeliveryTime: now.Add(time.Duration(etaMinutes) * time.Minute),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	order.SetItems(processed)

	err := s.exec.Execute(ctx, order.Items, func(ctx context.Context) error {
		return s.orders.Insert(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("item_count", len(order.Items)))

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return orders, nil
}
