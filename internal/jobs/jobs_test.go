package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSweepStore struct {
	cutoff time.Time
	ids    []int64
	err    error
}

func (f *fakeSweepStore) CancelStaleUnpaidOrders(ctx context.Context, createdAt time.Time) ([]int64, error) {
	f.cutoff = createdAt
	return f.ids, f.err
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	store := &fakeSweepStore{ids: []int64{4, 9}}
	s := NewSweeper(store, 2*time.Hour, zap.NewNop())
	s.now = func() time.Time { return now }

	ids, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 9}, ids)
	assert.Equal(t, now.Add(-2*time.Hour), store.cutoff)
}

func TestSweep_Error(t *testing.T) {
	s := NewSweeper(&fakeSweepStore{err: errors.New("db down")}, time.Hour, zap.NewNop())

	_, err := s.Sweep(context.Background())
	assert.Error(t, err)

	// Job logs instead of failing.
	s.Job(time.Second)(context.Background())
}

func TestScheduler_RunsJobs(t *testing.T) {
	sched := NewScheduler(zap.NewNop())
	var runs atomic.Int32
	require.NoError(t, sched.Add("tick", "@every 1s", func(ctx context.Context) { runs.Add(1) }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_BadSpec(t *testing.T) {
	sched := NewScheduler(zap.NewNop())
	err := sched.Add("broken", "every so often", func(ctx context.Context) {})
	assert.Error(t, err)
}
