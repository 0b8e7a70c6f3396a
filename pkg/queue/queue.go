// Package queue runs background jobs for the storefront.
//
// Jobs are JSON-encoded into an envelope, pushed onto a Driver (in-memory
// channel or Redis list) and executed by a worker pool. A job that fails on
// every attempt is recorded in the failed_jobs table.
//
//	q := queue.New(driver, queue.Options{DB: db, Workers: 2})
//	q.Register(jobs.OrderPlacedName, func() queue.Job { return &jobs.OrderPlaced{...} })
//	q.Start(ctx)
//	defer q.Stop()
//
//	err := q.Dispatch(ctx, &jobs.OrderPlaced{OrderID: 7})
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/workerpool"
)

// ErrQueueFull is returned by a driver that cannot accept more jobs.
var ErrQueueFull = errors.New("queue: full")

// Job is the unit of background work.
type Job interface {
	Handle(ctx context.Context) error
}

// Named jobs choose their registry key; others are keyed by %T.
type Named interface {
	JobName() string
}

// Retryable jobs override Options.MaxAttempts.
type Retryable interface {
	MaxAttempts() int
}

// Driver is the queue storage backend. Pop returns (nil, nil) when nothing
// arrived before its internal timeout.
type Driver interface {
	Push(ctx context.Context, payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// Options configures a Manager.
type Options struct {
	Workers     int
	MaxAttempts int                             // default 3
	Backoff     func(attempt int) time.Duration // default attempt × 1s
	DB          *gorm.DB                        // failed_jobs store; nil keeps failures in memory
	Log         *slog.Logger
}

// Manager dispatches and runs jobs.
type Manager struct {
	driver   Driver
	opts     Options
	log      *slog.Logger
	mu       sync.RWMutex
	registry map[string]func() Job
	failed   []FailedJobRecord

	cancel context.CancelFunc
	done   chan struct{}
	pool   *workerpool.Pool
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func New(driver Driver, opts Options) *Manager {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff == nil {
		opts.Backoff = func(attempt int) time.Duration { return time.Duration(attempt) * time.Second }
	}
	log := opts.Log
	if log == nil {
		log = logger.L
	}
	return &Manager{
		driver:   driver,
		opts:     opts,
		log:      log.With("component", "queue"),
		registry: map[string]func() Job{},
	}
}

// Register makes a job type decodable by name. Call once per type at boot.
func (m *Manager) Register(name string, factory func() Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry[name] = factory
}

// NameOf returns the registry key for job.
func NameOf(job Job) string {
	if n, ok := job.(Named); ok {
		return n.JobName()
	}
	return fmt.Sprintf("%T", job)
}

// Dispatch pushes job onto the queue. A failure is counted in
// storefront_queue_dispatch_failures_total and returned to the caller.
func (m *Manager) Dispatch(ctx context.Context, job Job) error {
	name := NameOf(job)

	err := m.push(ctx, name, job)
	if err != nil {
		metrics.QueueDispatchFailures.WithLabelValues(name).Inc()
		return err
	}
	logger.WithCtx(ctx).Debug("queue: job dispatched", "type", name)
	return nil
}

func (m *Manager) push(ctx context.Context, name string, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", name, err)
	}

	env, err := json.Marshal(envelope{Type: name, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	if err := m.driver.Push(ctx, env); err != nil {
		return fmt.Errorf("queue: push %s: %w", name, err)
	}
	return nil
}

// ------------------- Worker -------------------

// Start begins popping jobs and running them on Options.Workers goroutines.
// Jobs keep running until Stop, even if ctx is cancelled mid-job.
func (m *Manager) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.pool = workerpool.New(m.opts.Workers, workerpool.WithPanicHandler(func(v any) {
		m.log.Error("queue: job panicked", "panic", fmt.Sprint(v))
	}))

	go m.loop(ctx)
	m.log.Info("queue: workers started", "count", m.opts.Workers)
}

// Stop stops popping, waits for running and queued jobs, and returns.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.pool.Shutdown()
	m.log.Info("queue: workers stopped")
}

func (m *Manager) loop(ctx context.Context) {
	defer close(m.done)
	jobCtx := context.WithoutCancel(ctx)

	for {
		raw, err := m.driver.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.log.Warn("queue: pop failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}
		if raw == nil {
			continue
		}

		if err := m.pool.SubmitWait(ctx, func() { m.process(jobCtx, raw) }); err != nil {
			// Popped but not run: put it back so it is not lost.
			if perr := m.driver.Push(jobCtx, raw); perr != nil {
				m.log.Error("queue: requeue failed", "error", perr)
			}
			return
		}
	}
}

func (m *Manager) process(ctx context.Context, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		m.log.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		m.log.Warn("queue: unregistered job type", "type", env.Type)
		m.persistFailed(ctx, env.Type, env.Payload, errors.New("unregistered job type"), 0)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		m.log.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		m.persistFailed(ctx, env.Type, env.Payload, err, 0)
		return
	}

	m.runWithRetry(ctx, job, env.Type, env.Payload)
}

func (m *Manager) attempts(job Job) int {
	if r, ok := job.(Retryable); ok && r.MaxAttempts() > 0 {
		return r.MaxAttempts()
	}
	return m.opts.MaxAttempts
}

func (m *Manager) runWithRetry(ctx context.Context, job Job, name string, payload []byte) {
	limit := m.attempts(job)
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= limit; attempt++ {
		if lastErr = job.Handle(ctx); lastErr == nil {
			metrics.RecordQueueJob(name, "success", start)
			m.log.Info("queue: job processed", "type", name, "attempt", attempt)
			return
		}
		m.log.Warn("queue: job failed", "type", name, "attempt", attempt, "max", limit, "error", lastErr)
		if attempt < limit {
			time.Sleep(m.opts.Backoff(attempt))
		}
	}

	metrics.RecordQueueJob(name, "failed", start)
	m.persistFailed(ctx, name, payload, lastErr, limit)
	m.log.Error("queue: job exhausted attempts", "type", name, "error", lastErr)
}
