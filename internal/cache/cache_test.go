package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluepoint/service-crm/internal/cache"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

// =============================================================================
// REMEMBER
// =============================================================================

func TestRemember_ComputesOnceWithinTTL(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	calls := 0
	compute := func() (payload, error) {
		calls++
		return payload{Name: "customers", Count: 3}, nil
	}

	first, err := cache.Remember(ctx, store, "k", time.Minute, compute)
	require.NoError(t, err)

	second, err := cache.Remember(ctx, store, "k", time.Minute, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestRemember_DistinctKeysComputeSeparately(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	calls := 0
	compute := func() (payload, error) {
		calls++
		return payload{Count: calls}, nil
	}

	a, err := cache.Remember(ctx, store, "a", time.Minute, compute)
	require.NoError(t, err)

	b, err := cache.Remember(ctx, store, "b", time.Minute, compute)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotEqual(t, a.Count, b.Count)
}

func TestRemember_ExpiredEntryRecomputes(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	calls := 0
	compute := func() (payload, error) {
		calls++
		return payload{Count: calls}, nil
	}

	_, err := cache.Remember(ctx, store, "k", -time.Second, compute)
	require.NoError(t, err)

	out, err := cache.Remember(ctx, store, "k", time.Minute, compute)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, out.Count)
}

func TestRemember_StoreFailureDegradesToCompute(t *testing.T) {
	ctx := context.Background()

	calls := 0
	compute := func() (payload, error) {
		calls++
		return payload{Name: "direct"}, nil
	}

	out, err := cache.Remember(ctx, failingStore{}, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "direct", out.Name)

	// every call computes while the store is down, none fails
	_, err = cache.Remember(ctx, failingStore{}, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ComputeErrorIsNotCached(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := cache.Remember(ctx, store, "k", time.Minute, func() (payload, error) {
		return payload{}, boom
	})
	require.ErrorIs(t, err, boom)

	out, err := cache.Remember(ctx, store, "k", time.Minute, func() (payload, error) {
		return payload{Name: "recovered"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", out.Name)
}
