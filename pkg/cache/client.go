package cache

import (
	"context"
	"fmt"
	"time"

	"estatehub/pkg/config"
	"estatehub/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// NewClient builds the process-scoped Redis client. It does not require the server to be up:
// a failed startup ping is reported to the caller, which may keep the client and run degraded.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load Redis config: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Ping checks connectivity with a bounded wait.
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	RecordOperationDuration("ping", time.Since(start).Seconds())
	if err != nil {
		IncrementError("ping")
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.GlobalLogger.Errorf("error closing Redis: %v", err)
		return
	}
	logger.GlobalLogger.Println("Redis connection closed")
}
