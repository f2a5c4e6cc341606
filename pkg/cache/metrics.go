package cache

import (
	"estatehub/pkg/metrics"
)

// record the duration of a Redis operation with the given label.
func RecordOperationDuration(label string, duration float64) {
	metrics.RedisOperationDuration.WithLabelValues(label).Observe(duration)
}

// increment the error counter for a Redis operation with the given label.
func IncrementError(label string) {
	metrics.RedisErrorsTotal.WithLabelValues(label).Inc()
}

func recordFallback(operation string) {
	metrics.CacheFallbacksTotal.WithLabelValues(operation).Inc()
}

func recordInvalidation(result string) {
	metrics.CacheInvalidationsTotal.WithLabelValues(result).Inc()
}
