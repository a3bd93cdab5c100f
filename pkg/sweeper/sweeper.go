// Package sweeper removes completed orders that have sat past their retention
// window. The host process owns its lifecycle through Start and Stop.
package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OrderRemover is the slice of the order store the sweeper needs.
type OrderRemover interface {
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Sweeper struct {
	orders    OrderRemover
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger

	now  func() time.Time
	quit chan struct{}
	done chan struct{}
}

func New(orders OrderRemover, interval, retention time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		orders:    orders,
		interval:  interval,
		retention: retention,
		logger:    logger,
		now:       time.Now,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every interval tick until Stop is
// called. Sweep failures are logged and retried on the next tick; they never
// take the host process down.
func (s *Sweeper) Start() {
	go s.run()
}

// Stop terminates the sweep loop and waits for it to finish.
func (s *Sweeper) Stop() {
	close(s.quit)
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	s.sweepOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.quit:
			return
		}
	}
}

func (s *Sweeper) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("failed to sweep completed orders", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("swept completed orders", zap.Int64("removed", removed))
	}
}

// Sweep removes every completed order delivered at or before now minus the
// retention window and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	return s.orders.DeleteCompletedBefore(ctx, cutoff)
}
