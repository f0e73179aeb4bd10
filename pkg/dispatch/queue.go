package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/metrics"
)

var (
	ErrQueueFull   = errors.New("dispatch queue is full")
	ErrQueueClosed = errors.New("dispatch queue is closed")
	errNoResult    = errors.New("job produced no result")
)

/*
Queue runs jobs on a fixed pool of workers. Enqueue never blocks, and jobs run
on the queue's own context rather than the one of the request that created
them.
*/
type Queue struct {
	mu      sync.RWMutex
	jobs    chan *Job
	closed  bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	metrics *metrics.Metrics
}

type QueueOption func(*Queue)

func WithMetrics(m *metrics.Metrics) QueueOption {
	return func(q *Queue) {
		q.metrics = m
	}
}

func NewQueue(workers, buffer int, opts ...QueueOption) *Queue {
	if workers < 1 {
		workers = 1
	}

	if buffer < 0 {
		buffer = 0
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		jobs:   make(chan *Job, buffer),
		ctx:    ctx,
		cancel: cancel,
	}

	for _, opt := range opts {
		opt(q)
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	return q
}

// Enqueue hands job to the workers, or fails immediately if it cannot.
func (q *Queue) Enqueue(job *Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		q.metrics.QueueDepth(len(q.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

/*
Shutdown stops accepting jobs and waits for queued and running ones to
finish. If ctx ends first, jobs still waiting on their gate are abandoned,
running jobs see their context cancelled and still deliver their (usually
failed) payload, and ctx's error is returned.
*/
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})

	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}

func (q *Queue) worker(n int) {
	defer q.wg.Done()

	for job := range q.jobs {
		q.metrics.QueueDepth(len(q.jobs))
		q.run(job)
	}

	log.Debug("dispatch worker stopped", "worker", n)
}

func (q *Queue) run(job *Job) {
	select {
	case <-job.gate:
	case <-q.ctx.Done():
		log.Warn("job abandoned before release", "job", job.ID)
		return
	}

	start := time.Now()
	state := "completed"

	payload, err := q.execute(job)
	if err == nil && payload == nil {
		err = errNoResult
	}

	if err != nil {
		state = "failed"
		log.Error("job failed", "job", job.ID, "error", err)
		payload = job.Fail(err)
	}

	q.metrics.Task(state, time.Since(start))

	// A shutdown deadline cancels q.ctx, which must not stop the payload of a
	// job that already ran from going out.
	derr := job.Deliver(context.WithoutCancel(q.ctx), payload)
	q.metrics.Delivery(derr)

	if derr != nil {
		log.Error("delivery failed", "job", job.ID, "error", derr)
		return
	}

	log.Info("job delivered", "job", job.ID, "state", state)
}

func (q *Queue) execute(job *Job) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	return job.Execute(q.ctx)
}
