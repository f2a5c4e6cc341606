package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pingOK(context.Context) error { return nil }

func pingFail(context.Context) error { return errors.New("connection refused") }

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name      string
		pingStore func(context.Context) error
		pingCache func(context.Context) error
		status    int
		state     string
	}{
		{"all up", pingOK, pingOK, http.StatusOK, "ok"},
		{"cache disabled", pingOK, nil, http.StatusOK, "ok"},
		{"cache down", pingOK, pingFail, http.StatusOK, "degraded"},
		{"store down", pingFail, pingOK, http.StatusServiceUnavailable, "error"},
		{"both down", pingFail, pingFail, http.StatusServiceUnavailable, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := checkHealth(context.Background(), tt.pingStore, tt.pingCache)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.state, body["status"])
		})
	}
}

func TestCheckHealth_StoreFailureCancelsCachePing(t *testing.T) {
	// The cache ping blocks until its context is cancelled.
	hungCache := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	done := make(chan int, 1)
	go func() {
		status, _ := checkHealth(context.Background(), pingFail, hungCache)
		done <- status
	}()

	select {
	case status := <-done:
		assert.Equal(t, http.StatusServiceUnavailable, status)
	case <-time.After(time.Second):
		t.Fatal("health check waited on the cache after the store failed")
	}
}
