package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the key-value port behind list caching. Implementations only
// need byte-level Get/Set with TTL; typing lives in Remember.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Remember is read-through get-or-compute. Concurrent misses on the same
// key may each compute and write; last write wins, which is acceptable for
// list caching. Store failures degrade to computing directly rather than
// failing the request.
func Remember[T any](
	ctx context.Context,
	s Store,
	key string,
	ttl time.Duration,
	compute func() (T, error),
) (T, error) {

	var out T

	if raw, ok, err := s.Get(ctx, key); err == nil && ok {
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		// corrupt entry: fall through and recompute
	}

	out, err := compute()
	if err != nil {
		return out, err
	}

	if raw, err := json.Marshal(out); err == nil {
		_ = s.Set(ctx, key, raw, ttl)
	}

	return out, nil
}
