package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/mamba-kebabs/ordering/internal/metrics"
	"go.uber.org/zap"
)

// SweepStore is satisfied by *database.Queries.
type SweepStore interface {
	CancelStaleUnpaidOrders(ctx context.Context, createdAt time.Time) ([]int64, error)
}

// Sweeper cancels orders whose checkout was abandoned: still new and unpaid after ttl.
type Sweeper struct {
	store  SweepStore
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewSweeper(store SweepStore, ttl time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Sweep returns the ids of the orders it canceled.
func (s *Sweeper) Sweep(ctx context.Context) ([]int64, error) {
	cutoff := s.now().Add(-s.ttl)
	ids, err := s.store.CancelStaleUnpaidOrders(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("cancel stale unpaid orders: %w", err)
	}
	if len(ids) > 0 {
		metrics.UnpaidSwept(len(ids))
		s.logger.Info("canceled stale unpaid orders", zap.Int64s("order_ids", ids), zap.Time("cutoff", cutoff))
	}
	return ids, nil
}

// Job adapts Sweep to Scheduler.Add, bounding each run by timeout.
func (s *Sweeper) Job(timeout time.Duration) func(ctx context.Context) {
	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("sweep unpaid orders", zap.Error(err))
		}
	}
}
