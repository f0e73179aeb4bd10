package dispatch

import (
	"context"
	"sync"
)

/*
Job is one unit of background work: produce a payload, or a failure payload if
that goes wrong, then hand it to Deliver exactly once.

A job does not start until its gate is released, so the code that accepted it
can finish answering its caller first.
*/
type Job struct {
	ID      string
	Execute func(ctx context.Context) (any, error)
	Fail    func(err error) any
	Deliver func(ctx context.Context, payload any) error

	gate chan struct{}
	once sync.Once
}

func NewJob(
	id string,
	execute func(ctx context.Context) (any, error),
	fail func(err error) any,
	deliver func(ctx context.Context, payload any) error,
) *Job {
	return &Job{
		ID:      id,
		Execute: execute,
		Fail:    fail,
		Deliver: deliver,
		gate:    make(chan struct{}),
	}
}

// Release lets a worker start the job. It is safe to call more than once.
func (job *Job) Release() {
	job.once.Do(func() {
		close(job.gate)
	})
}
