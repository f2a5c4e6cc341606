// Package cache provides the Redis-backed read-through cache for the estatehub catalog.
package cache

import (
	"crypto/tls"
	"fmt"
	"time"

	"estatehub/pkg/config"

	"github.com/go-redis/redis/v8"
)

// Options translates the service configuration into go-redis client options.
func Options(cfg *config.Config) (*redis.Options, error) {
	var tlsConfig *tls.Config
	if cfg.Redis.TLSEnabled {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.Redis.TLSCertFile != "" {
			cert, err := tls.LoadX509KeyPair(cfg.Redis.TLSCertFile, cfg.Redis.TLSCertFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
			}
			tlsConfig.Certificates = []tls.Certificate{cert}
		}
	}

	// Socket timeouts sit above the per-call budget so the context deadline fires first.
	socketTimeout := 2 * cfg.Cache.OpTimeout
	if socketTimeout <= 0 {
		socketTimeout = time.Second
	}

	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		TLSConfig:    tlsConfig,
		DialTimeout:  socketTimeout,
		ReadTimeout:  socketTimeout,
		WriteTimeout: socketTimeout,
		MaxRetries:   1,
	}, nil
}
