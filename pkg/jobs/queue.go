package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrQueueClosed is returned when enqueueing on a queue that is not running.
var ErrQueueClosed = errors.New("queue is not running")

// Job is one unit of background work.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue is an in-memory job dispatcher backed by a fixed set of goroutines.
// Failed jobs are retried with a fixed delay until MaxRetries is exhausted.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	workers sync.WaitGroup
	retries sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

// NewQueue builds a queue that hands jobs to handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 16
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.cfg.Workers; i++ {
		q.workers.Add(1)
		go q.work()
	}
	q.running = true
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new jobs, lets workers finish what is buffered and waits.
// Pending retries are dropped.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	q.cancel()
	q.mu.Unlock()

	close(q.jobs)
	q.workers.Wait()
	q.retries.Wait()
	q.logger.Info("queue stopped")
}

// Enqueue schedules a job without blocking. A full buffer is reported as an
// error so callers on the request path are never held up.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.running {
		return ErrQueueClosed
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.New("queue " + q.name + " is full")
	}
}

func (q *Queue) work() {
	defer q.workers.Done()
	for job := range q.jobs {
		if err := q.handler(context.WithoutCancel(q.ctx), job); err != nil {
			q.retry(job, err)
		}
	}
}

func (q *Queue) retry(job Job, err error) {
	job.Attempt++
	fields := []zap.Field{zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempt", job.Attempt), zap.Error(err)}
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Error("job exceeded retries", fields...)
		return
	}
	q.logger.Warn("job failed, retrying", fields...)

	q.retries.Add(1)
	go func() {
		defer q.retries.Done()
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			q.logger.Warn("dropping retry on shutdown", zap.String("job_id", job.ID))
		case <-timer.C:
			if err := q.Enqueue(job); err != nil {
				q.logger.Error("failed to requeue job", zap.String("job_id", job.ID), zap.Error(err))
			}
		}
	}()
}
