package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLimiter_BoundsConcurrency(t *testing.T) {
	limiter := NewLimiter(2)

	var current, peak int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := limiter.Do(context.Background(), func() error {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestLimiter_DoPropagatesError(t *testing.T) {
	limiter := NewLimiter(1)
	wantErr := errors.New("analysis failed")

	err := limiter.Do(context.Background(), func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("Do() = %v, want %v", err, wantErr)
	}
}

func TestLimiter_AcquireHonorsContext(t *testing.T) {
	limiter := NewLimiter(1)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() = %v, want deadline exceeded", err)
	}
}

func TestNewLimiter_MinimumOfOne(t *testing.T) {
	limiter := NewLimiter(0)
	if err := limiter.Do(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("Do: %v", err)
	}
}
