package utils

import "sync"

// WorkerPool runs submitted jobs on at most maxWorkers goroutines.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job, blocking while all workers are busy.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// ErrorGroup collects the first error reported by concurrent jobs.
type ErrorGroup struct {
	mu  sync.Mutex
	err error
}

// Set records err if it is the first non-nil error.
func (g *ErrorGroup) Set(err error) {
	if err == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
	}
}

// Err returns the first recorded error.
func (g *ErrorGroup) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
