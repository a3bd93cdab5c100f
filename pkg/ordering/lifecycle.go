package ordering

import (
	"context"

	"github.com/Sakthivel0926/food-ordering-backend/pkg/models"
	"go.uber.org/zap"
)

// CancelOrder cancels an order owned by userID that is still pending or
// processing, then restores each line item's stock. The status flip is a
// single conditioned write, so of two racing cancellations only the first
// succeeds. Stock restoration is best-effort per item: failures never revert
// the cancellation but are returned as a PartialRestorationError alongside
// the cancelled order.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.orders.CancelIfCancellable(ctx, orderID, userID, s.now())
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if order == nil {
		return nil, &NotCancellableError{OrderID: orderID}
	}

	// The cancellation has been recorded; the restock writes must not die
	// with the request context.
	restockCtx := context.WithoutCancel(ctx)

	var failed []string
	for _, item := range order.Items {
		if err := s.catalog.Increment(restockCtx, item.FoodID, item.Quantity); err != nil {
			s.logger.Warn("failed to restore stock for cancelled order",
				zap.String("order_id", order.ID),
				zap.String("food_id", item.FoodID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			failed = append(failed, item.FoodID)
		}
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID))

	if len(failed) > 0 {
		return order, &PartialRestorationError{OrderID: order.ID, FoodIDs: failed}
	}
	return order, nil
}

// MarkDelivered stamps the order completed with the delivery time. It has no
// inventory side effects.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.MarkDelivered(ctx, orderID, s.now())
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if order == nil {
		return nil, &NotFoundError{Kind: "order", ID: orderID}
	}

	s.logger.Info("order delivered", zap.String("order_id", order.ID))
	return order, nil
}

// UpdateStatus applies an admin status change, enforcing the order state
// machine: pending -> processing/cancelled, processing -> completed/cancelled,
// terminal statuses admit no transition. The write is conditioned on the
// status the transition was validated against, so of two racing transitions
// only the first lands.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to models.Status) (*models.Order, error) {
	if !models.ValidStatus(to) {
		return nil, &InvalidTransitionError{To: to}
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if order == nil {
		return nil, &NotFoundError{Kind: "order", ID: orderID}
	}
	if !models.CanTransition(order.Status, to) {
		return nil, &InvalidTransitionError{From: order.Status, To: to}
	}

	updated, err := s.orders.UpdateStatusFrom(ctx, orderID, order.Status, to)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if updated == nil {
		// A concurrent transition moved the order after the read above.
		// Re-validate against whatever landed.
		current, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, &PersistenceError{Err: err}
		}
		if current == nil {
			return nil, &NotFoundError{Kind: "order", ID: orderID}
		}
		return nil, &InvalidTransitionError{From: current.Status, To: to}
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)))

	return updated, nil
}
