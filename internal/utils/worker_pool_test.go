package utils

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWorkerPool_RunsTasks tests that every submitted task executes
// before Shutdown returns.
func TestWorkerPool_RunsTasks(t *testing.T) {
	pool := NewWorkerPool(2)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(func() { ran.Add(1) })
	}
	pool.Shutdown()

	assert.Equal(t, int32(10), ran.Load())
}

// TestWorkerPool_SubmitAfterShutdown tests that a late submission is
// dropped rather than panicking on the closed queue.
func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()

	var ran atomic.Int32
	assert.NotPanics(t, func() {
		pool.Submit(func() { ran.Add(1) })
	})
	assert.Equal(t, int32(0), ran.Load())
}

// TestWorkerPool_ShutdownIdempotent tests that repeated shutdowns are
// harmless.
func TestWorkerPool_ShutdownIdempotent(t *testing.T) {
	pool := NewWorkerPool(1)

	assert.NotPanics(t, func() {
		pool.Shutdown()
		pool.Shutdown()
	})
}
