// Package workerpool provides a bounded goroutine pool with backpressure.
//
// Queue workers run each job on the pool; Submit never blocks and reports
// ErrPoolFull when every worker and buffer slot is taken, SubmitWait blocks
// until a slot frees up or the context ends.
//
//	pool := workerpool.New(4, workerpool.WithPanicHandler(func(v any) {
//	    logger.Error("job panicked", "panic", v)
//	}))
//	defer pool.Shutdown()
//
//	if err := pool.SubmitWait(ctx, job); err != nil { ... }
package workerpool

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed and sends on tasks
	closed  bool
	closeCh chan struct{}
	onPanic func(any)
}

// Option configures a Pool.
type Option func(*Pool)

// WithPanicHandler is called with the recovered value when a task panics.
func WithPanicHandler(fn func(any)) Option {
	return func(p *Pool) { p.onPanic = fn }
}

// New starts size workers (at least one) with a buffer of 2×size.
func New(size int, opts ...Option) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until task is queued, ctx is done, or the pool closes.
func (p *Pool) SubmitWait(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.closeCh:
		return ErrPoolClosed
	}
}

// Shutdown stops accepting tasks, runs what is already queued and waits for
// the workers to exit. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		// Unblock SubmitWait callers before taking the write lock.
		close(p.closeCh)

		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()

		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.safeRun(task)
	}
}

func (p *Pool) safeRun(task func()) {
	defer func() {
		if v := recover(); v != nil && p.onPanic != nil {
			p.onPanic(v)
		}
	}()
	task()
}
