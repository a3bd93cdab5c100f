package ordering

import (
	"errors"
	"fmt"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
)

// ErrNoItems is returned when a placement request carries no line items.
var ErrNoItems = errors.New("no items in order")

// InvalidReferenceError reports a food ID that is not a well-formed identity.
type InvalidReferenceError struct {
	FoodID string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid food ID format: %s", e.FoodID)
}

// NotFoundError reports an entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Kind, e.ID)
}

// InvalidQuantityError reports a requested quantity that is not an integer >= 1.
type InvalidQuantityError struct {
	FoodID string
	Name   string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for %s", e.Name)
}

// InsufficientStockError reports a request exceeding the available stock.
type InsufficientStockError struct {
	FoodID    string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity for %s. Available: %d", e.Name, e.Available)
}

// NotCancellableError reports a cancellation against an order that is missing,
// owned by someone else, or already in a non-cancellable status.
type NotCancellableError struct {
	OrderID string
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("order %s not found or cannot be cancelled", e.OrderID)
}

// InvalidTransitionError reports a status change the state machine forbids.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("invalid order status: %s", e.To)
	}
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// PersistenceError wraps an unexpected storage failure. Handlers surface it
// generically without the underlying detail.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialRestorationError reports line items whose stock could not be restored
// after a cancellation. The cancellation itself stands.
type PartialRestorationError struct {
	OrderID string
	FoodIDs []string
}

func (e *PartialRestorationError) Error() string {
	return fmt.Sprintf("order %s cancelled but stock restoration failed for %d item(s)", e.OrderID, len(e.FoodIDs))
}
