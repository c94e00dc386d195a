// Package worker provides the concurrency primitives shared by the
// classification phase and batch document processing.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed on the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool fans jobs out over a fixed number of workers. Jobs must not share
// mutable state; the classification phase relies on this to stay
// deterministic regardless of scheduling.
type Pool struct {
	workers int
	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.Mutex
	results []Result
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			p.mu.Lock()
			p.results = append(p.results, result)
			p.mu.Unlock()
		}
	}
}

// Submit queues a job. Submissions are dropped once the pool context is
// cancelled.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// all results. Result order follows completion order; callers needing a
// stable order must sort.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Shutdown cancels outstanding work immediately.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
