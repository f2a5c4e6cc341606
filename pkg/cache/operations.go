package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const scanBatchSize = 200

// RedisStore is the Store backed by a shared go-redis client. Every round trip is capped by
// opTimeout so a hung server degrades to a cache failure instead of blocking the request.
type RedisStore struct {
	client    redis.UniversalClient
	opTimeout time.Duration
}

func NewRedisStore(client redis.UniversalClient, opTimeout time.Duration) *RedisStore {
	return &RedisStore{client: client, opTimeout: opTimeout}
}

func (s *RedisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// retrieve the raw value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	val, err := s.client.Get(ctx, key).Bytes()
	RecordOperationDuration("get", time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		IncrementError("get")
		return nil, NewCacheError("get", key, err)
	}
	return val, nil
}

// store value under key with the given expiration.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := s.client.Set(ctx, key, value, ttl).Err()
	RecordOperationDuration("set", time.Since(start).Seconds())
	if err != nil {
		IncrementError("set")
		return NewCacheError("set", key, err)
	}
	return nil
}

// remove all keys matching pattern. A pattern without glob metacharacters is a single DEL;
// otherwise keys are walked with SCAN so the server is never blocked by KEYS.
func (s *RedisStore) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return s.del(ctx, pattern)
	}

	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := s.scan(ctx, cursor, pattern)
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := s.del(ctx, keys...)
			deleted += n
			if err != nil {
				return deleted, err
			}
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (s *RedisStore) scan(ctx context.Context, cursor uint64, pattern string) ([]string, uint64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
	RecordOperationDuration("scan", time.Since(start).Seconds())
	if err != nil {
		IncrementError("scan")
		return nil, 0, NewCacheError("scan", pattern, err)
	}
	return keys, next, nil
}

func (s *RedisStore) del(ctx context.Context, keys ...string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	n, err := s.client.Del(ctx, keys...).Result()
	RecordOperationDuration("delete", time.Since(start).Seconds())
	if err != nil {
		IncrementError("delete")
		return 0, NewCacheError("delete", strings.Join(keys, ","), err)
	}
	return n, nil
}

// check the backend is reachable within the per-call budget.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := s.client.Ping(ctx).Err()
	RecordOperationDuration("ping", time.Since(start).Seconds())
	if err != nil {
		IncrementError("ping")
		return NewCacheError("ping", "", err)
	}
	return nil
}
