package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool runs independent analysis jobs concurrently. Page and scale
// analysis itself stays sequential because it shares one drawing surface;
// the pool is for batches of unrelated inputs, where every job owns its
// own buffers.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a pool; workers <= 0 uses the CPU count
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers once
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

// Submit queues a job; blocks when the queue is full
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until all submitted jobs have completed
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close shuts down the pool; Submit must not be called afterwards
func (wp *WorkerPool) Close() {
	close(wp.jobQueue)
}
