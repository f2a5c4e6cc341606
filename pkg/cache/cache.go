package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"estatehub/pkg/logger"
	"estatehub/pkg/metrics"
)

// ReadThrough wraps backing-store reads with get-or-compute-and-store semantics.
// The cache is an optimization only: store failures are logged and absorbed, never returned.
type ReadThrough struct {
	store Store
	ttl   time.Duration
}

func NewReadThrough(store Store, ttl time.Duration) *ReadThrough {
	if store == nil {
		store = NoopStore{}
	}
	return &ReadThrough{store: store, ttl: ttl}
}

// Store exposes the underlying backend, e.g. for health checks.
func (rt *ReadThrough) Store() Store {
	return rt.store
}

// Resolve returns the live entry for key, or runs load, stores its JSON form for the
// configured TTL and returns it. Errors from load are returned as is and never cached.
// Concurrent misses on the same key may each run load; the last write wins.
func Resolve[T any](ctx context.Context, rt *ReadThrough, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if rt == nil {
		return load(ctx)
	}

	raw, err := rt.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		decodeErr := json.Unmarshal(raw, &cached)
		if decodeErr == nil {
			metrics.CacheHitsTotal.Inc()
			return cached, nil
		}
		// A corrupt entry is overwritten below.
		rt.absorb("decode", key, decodeErr)
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheMissesTotal.Inc()
	default:
		// Backend unreachable: skip the write too rather than pay a second timeout.
		rt.absorb("get", key, err)
		return load(ctx)
	}

	value, err := load(ctx)
	if err != nil {
		return zero, err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		rt.absorb("encode", key, err)
		return value, nil
	}
	if err := rt.store.Set(ctx, key, raw, rt.ttl); err != nil {
		rt.absorb("set", key, err)
	}

	// Hand back the snapshot exactly as a later hit would decode it.
	var snapshot T
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return value, nil
	}
	return snapshot, nil
}

// Invalidate evicts every entry matching the glob pattern. Failures are logged and swallowed:
// a stale entry is bounded by the TTL and must never fail the mutation that triggered it.
func (rt *ReadThrough) Invalidate(ctx context.Context, pattern string) {
	if rt == nil {
		return
	}
	n, err := rt.store.DeletePattern(ctx, pattern)
	if err != nil {
		recordInvalidation("failed")
		logger.GlobalLogger.Warnf("cache invalidation of %q failed, entries stay until TTL: %v", pattern, err)
		return
	}
	recordInvalidation("ok")
	logger.GlobalLogger.Debugf("cache invalidation of %q removed %d keys", pattern, n)
}

func (rt *ReadThrough) absorb(operation, key string, err error) {
	recordFallback(operation)
	logger.GlobalLogger.Warnf("cache %s failed for key %q, serving from store: %v", operation, key, err)
}

// NoopStore never holds anything: every read misses and writes are dropped.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (NoopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoopStore) DeletePattern(context.Context, string) (int64, error) {
	return 0, nil
}
