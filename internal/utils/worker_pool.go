package utils

import (
	"sync"
)

// WorkerPool runs submitted tasks on a fixed number of workers. It keeps
// slow side work, such as reverse-geocoding lookups, off the message
// delivery path.
type WorkerPool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
}

// NewWorkerPool starts a pool with the given number of workers.
func NewWorkerPool(workers int) *WorkerPool {
	pool := &WorkerPool{
		tasks: make(chan func(), workers*4),
	}

	pool.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit queues a task for execution. Blocks only when the queue is
// full. After Shutdown the task is silently dropped; submissions can
// still arrive from broker callbacks racing a teardown.
func (wp *WorkerPool) Submit(task func()) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return
	}
	wp.tasks <- task
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// Safe to call more than once. The write lock excludes in-flight
// Submit calls, so the channel is never closed mid-send.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	wp.mu.Unlock()

	close(wp.tasks)
	wp.wg.Wait()
}
