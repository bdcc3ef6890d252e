package queue

import (
	"context"
)

// JobQueue is the broker-facing contract for schedule-generation jobs. The
// API server only enqueues; the worker consumes.
type JobQueue interface {
	// Enqueue publishes a job.
	Enqueue(ctx context.Context, job *Job) error

	// Consume streams messages until ctx is cancelled; the returned channels
	// are closed on cancellation or broker failure. Each message must be
	// acked or nacked by the caller. prefetchCount bounds the number of
	// unacknowledged messages held at once.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close tears down the broker connection.
	Close() error

	// HealthCheck reports whether the broker connection is usable.
	HealthCheck(ctx context.Context) error
}
