package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrCacheMiss is returned by Store.Get when no live entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

type CacheError struct {
	Operation string
	Key       string
	Err       error
	Retryable bool
}

func NewCacheError(operation, key string, err error) *CacheError {
	return &CacheError{
		Operation: operation,
		Key:       key,
		Err:       err,
		Retryable: isTransient(err),
	}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache operation %s on %q failed: %v", e.Operation, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
