// Package idempotency records which webhook deliveries have already been processed so
// provider retries are acknowledged without touching orders twice.
package idempotency

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL matches the window in which the payment provider retries a delivery.
const DefaultTTL = 72 * time.Hour

// Store claims keys for exclusive processing.
type Store interface {
	// Claim reports true when the key was not seen before and is now held by the caller.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets a claim so a later retry can process the key again.
	Release(ctx context.Context, key string) error
}

// Memory is a process-local Store. Claims expire after the configured TTL.
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seen map[string]time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

func (m *Memory) Claim(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.seen {
		if !now.Before(exp) {
			delete(m.seen, k)
		}
	}
	if _, ok := m.seen[key]; ok {
		return false, nil
	}
	m.seen[key] = now.Add(m.ttl)
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.seen, key)
	m.mu.Unlock()
	return nil
}
