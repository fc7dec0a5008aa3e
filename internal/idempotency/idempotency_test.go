package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ClaimOnce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour)

	ok, err := m.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = m.Claim(ctx, "evt_2")
	assert.True(t, ok)
}

func TestMemory_Release(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Hour)

	_, _ = m.Claim(ctx, "evt_1")
	require.NoError(t, m.Release(ctx, "evt_1"))

	ok, _ := m.Claim(ctx, "evt_1")
	assert.True(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	_, _ = m.Claim(ctx, "evt_1")
	now = now.Add(2 * time.Minute)

	ok, _ := m.Claim(ctx, "evt_1")
	assert.True(t, ok)
}

type fakeRedis struct {
	keys   map[string]time.Duration
	setErr error
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedis_ClaimAndRelease(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{keys: map[string]time.Duration{}}
	r := &Redis{client: fake, ttl: DefaultTTL}

	ok, err := r.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DefaultTTL, fake.keys["mamba:webhook:evt_1"])

	ok, err = r.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Release(ctx, "evt_1"))
	ok, _ = r.Claim(ctx, "evt_1")
	assert.True(t, ok)
}

func TestRedis_ClaimError(t *testing.T) {
	r := &Redis{client: &fakeRedis{keys: map[string]time.Duration{}, setErr: errors.New("connection refused")}, ttl: time.Hour}

	ok, err := r.Claim(context.Background(), "evt_1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, _, err := NewRedis(context.Background(), "not a url", time.Hour)
	assert.Error(t, err)
}
