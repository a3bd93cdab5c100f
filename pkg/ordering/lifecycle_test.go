package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
)

func TestCancelOrderRestoresStock(t *testing.T) {
	food := testFood(5)
	catalog := newFakeCatalog(food)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 3))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if got := catalog.quantity(food.ID); got != 2 {
		t.Fatalf("quantity after order = %d, want 2", got)
	}

	cancelled, err := svc.CancelOrder(context.Background(), order.ID, "user-1")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("CancelledAt not stamped")
	}
	if got := catalog.quantity(food.ID); got != 5 {
		t.Errorf("quantity after cancel = %d, want 5 (restored)", got)
	}
}

func TestCancelOrderTwice(t *testing.T) {
	food := testFood(5)
	catalog := newFakeCatalog(food)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 2))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if _, err := svc.CancelOrder(context.Background(), order.ID, "user-1"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err = svc.CancelOrder(context.Background(), order.ID, "user-1")
	var notCancel *NotCancellableError
	if !errors.As(err, &notCancel) {
		t.Fatalf("second cancel err = %v, want NotCancellableError", err)
	}

	// Stock restored exactly once.
	if got := catalog.quantity(food.ID); got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}
}

func TestCancelOrderNotCancellable(t *testing.T) {
	food := testFood(5)

	tests := []struct {
		name   string
		setup  func(t *testing.T, svc *Service, orderID string)
		userID string
	}{
		{
			name:   "wrong owner",
			setup:  func(*testing.T, *Service, string) {},
			userID: "someone-else",
		},
		{
			name: "completed order",
			setup: func(t *testing.T, svc *Service, orderID string) {
				if _, err := svc.MarkDelivered(context.Background(), orderID); err != nil {
					t.Fatalf("MarkDelivered: %v", err)
				}
			},
			userID: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog(food)
			orders := newFakeOrders()
			svc := newTestService(catalog, orders)

			order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 2))
			if err != nil {
				t.Fatalf("PlaceOrder: %v", err)
			}
			tt.setup(t, svc, order.ID)

			_, err = svc.CancelOrder(context.Background(), order.ID, tt.userID)
			var notCancel *NotCancellableError
			if !errors.As(err, &notCancel) {
				t.Fatalf("err = %v, want NotCancellableError", err)
			}

			// No restock on a failed cancellation.
			if got := catalog.quantity(food.ID); got != 3 {
				t.Errorf("quantity = %d, want 3", got)
			}
		})
	}
}

func TestCancelOrderPartialRestoration(t *testing.T) {
	first := testFood(5)
	second := testFood(5)
	catalog := newFakeCatalog(first, second)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	req := placeRequest(first.ID, 1)
	req.Items = append(req.Items, RequestedItem{FoodID: second.ID, Quantity: 2})
	order, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	catalog.incrementErrs[second.ID] = errors.New("connection reset")

	cancelled, err := svc.CancelOrder(context.Background(), order.ID, "user-1")

	var partial *PartialRestorationError
	if !errors.As(err, &partial) {
		t.Fatalf("err = %v, want PartialRestorationError", err)
	}
	if len(partial.FoodIDs) != 1 || partial.FoodIDs[0] != second.ID {
		t.Errorf("failed items = %v, want [%s]", partial.FoodIDs, second.ID)
	}

	// The cancellation itself stands.
	if cancelled == nil || cancelled.Status != models.StatusCancelled {
		t.Fatalf("order = %+v, want cancelled", cancelled)
	}
	if got := catalog.quantity(first.ID); got != 5 {
		t.Errorf("first item quantity = %d, want 5 (restored)", got)
	}
	if got := catalog.quantity(second.ID); got != 3 {
		t.Errorf("second item quantity = %d, want 3 (restoration failed)", got)
	}
}

func TestCancelOrderRestocksAfterClientDisconnect(t *testing.T) {
	food := testFood(5)
	catalog := newFakeCatalog(food)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 3))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// The client disconnects right after the cancellation is recorded; the
	// restock writes must be detached from the dead request context.
	catalog.honorCtx = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cancelled, err := svc.CancelOrder(ctx, order.ID, "user-1")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if got := catalog.quantity(food.ID); got != 5 {
		t.Errorf("quantity after cancel = %d, want 5 (restored)", got)
	}
}

func TestMarkDelivered(t *testing.T) {
	food := testFood(5)
	catalog := newFakeCatalog(food)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 2))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	delivered, err := svc.MarkDelivered(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	if delivered.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Error("DeliveredAt not stamped")
	}

	// Delivery has no inventory side effects.
	if got := catalog.quantity(food.ID); got != 3 {
		t.Errorf("quantity = %d, want 3", got)
	}
}

func TestMarkDeliveredNotFound(t *testing.T) {
	svc := newTestService(newFakeCatalog(), newFakeOrders())

	_, err := svc.MarkDelivered(context.Background(), "missing-order")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	food := testFood(5)

	tests := []struct {
		name    string
		prepare models.Status
		to      models.Status
		wantErr bool
	}{
		{name: "pending to processing", prepare: models.StatusPending, to: models.StatusProcessing},
		{name: "processing to completed", prepare: models.StatusProcessing, to: models.StatusCompleted},
		{name: "pending to completed", prepare: models.StatusPending, to: models.StatusCompleted, wantErr: true},
		{name: "completed is terminal", prepare: models.StatusCompleted, to: models.StatusProcessing, wantErr: true},
		{name: "cancelled is terminal", prepare: models.StatusCancelled, to: models.StatusProcessing, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newFakeCatalog(food)
			orders := newFakeOrders()
			svc := newTestService(catalog, orders)

			order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 1))
			if err != nil {
				t.Fatalf("PlaceOrder: %v", err)
			}
			if tt.prepare != models.StatusPending {
				if _, err := orders.UpdateStatusFrom(context.Background(), order.ID, models.StatusPending, tt.prepare); err != nil {
					t.Fatalf("prepare status: %v", err)
				}
			}

			updated, err := svc.UpdateStatus(context.Background(), order.ID, tt.to)
			if tt.wantErr {
				var invalid *InvalidTransitionError
				if !errors.As(err, &invalid) {
					t.Fatalf("err = %v, want InvalidTransitionError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if updated.Status != tt.to {
				t.Errorf("status = %s, want %s", updated.Status, tt.to)
			}
		})
	}
}

func TestUpdateStatusLosesRaceToConcurrentTransition(t *testing.T) {
	food := testFood(5)
	catalog := newFakeCatalog(food)
	orders := newFakeOrders()
	svc := newTestService(catalog, orders)

	order, err := svc.PlaceOrder(context.Background(), placeRequest(food.ID, 1))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// Another transition lands between this caller's validation read and its
	// write; the conditioned write must refuse to overwrite it.
	orders.beforeStatusWrite = func() {
		if _, err := orders.UpdateStatusFrom(context.Background(), order.ID, models.StatusPending, models.StatusCancelled); err != nil {
			t.Fatalf("competing transition: %v", err)
		}
	}

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.StatusProcessing)
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
	if invalid.From != models.StatusCancelled {
		t.Errorf("From = %s, want cancelled (the landed status)", invalid.From)
	}

	current, err := orders.FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if current.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled (first writer wins)", current.Status)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeCatalog(), newFakeOrders())

	_, err := svc.UpdateStatus(context.Background(), "any", models.Status("shipped"))
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
}
