package service

import (
	"runtime"
	"sync"
)

// WorkerPool runs batch analysis jobs on a fixed set of goroutines so a
// large batch request cannot fan out unbounded.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once
	closed   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start initializes and starts all workers in the pool
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
		wp.wg.Done()
	}
}

// Submit adds a job to the worker pool queue. Blocks when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until all submitted jobs have completed
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close shuts down the worker pool. Safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.closed.Do(func() {
		close(wp.jobQueue)
	})
}
