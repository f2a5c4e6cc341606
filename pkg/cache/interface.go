package cache

import (
	"context"
	"time"
)

// Store is the key-value backend behind ReadThrough. Implementations bound their own latency.
type Store interface {
	// Get returns the stored bytes, or ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePattern removes every key matching a glob-style pattern and reports how many went.
	DeletePattern(ctx context.Context, pattern string) (int64, error)
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
