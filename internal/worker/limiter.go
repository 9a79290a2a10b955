package worker

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds how many analyses run at once. Analysis is CPU-bound,
// so the limit is a concurrency cap, not a rate.
type Limiter struct {
	sem *semaphore.Weighted
}

// NewLimiter creates a limiter allowing up to max concurrent holders
func NewLimiter(max int) *Limiter {
	if max <= 0 {
		max = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(int64(max))}
}

// Acquire blocks until a slot is free or the context is done
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release frees a slot
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Do runs fn while holding a slot
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.sem.Release(1)
	return fn()
}
