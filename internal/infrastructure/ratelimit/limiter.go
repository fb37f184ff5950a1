// Package ratelimit spaces outbound API requests.
package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter grants at most one acquisition per MinInterval across all callers.
// Grant decisions are serialized inside rate.Limiter; callers sleep outside its lock.
//
// Grants are scheduled from reservation time, not wake-up time: the k-th grant
// after an idle start never returns before start + k*MinInterval, but a caller
// that wakes late can leave the next gap slightly shorter than MinInterval.
// The rate over any run of grants never exceeds one per MinInterval.
//
// Thread Safety: Safe for concurrent use.
type Limiter struct {
	limiter     *rate.Limiter
	minInterval time.Duration

	// Statistics
	totalAcquired atomic.Int64
	totalWaitTime atomic.Int64 // in nanoseconds
}

// Stats contains statistics about limiter usage.
type Stats struct {
	TotalAcquired int64
	MinInterval   time.Duration
	AvgWaitTime   time.Duration
}

// New creates a limiter with the given minimum spacing between grants.
// A non-positive interval disables spacing.
func New(minInterval time.Duration) *Limiter {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Limiter{
		limiter:     rate.NewLimiter(limit, 1),
		minInterval: minInterval,
	}
}

// Acquire blocks until the next grant or until ctx is done.
// The grant time is the reserved slot; see Limiter for how wake-up jitter
// affects the spacing observed between two callers.
func (l *Limiter) Acquire(ctx context.Context) error {
	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	l.totalAcquired.Add(1)
	l.totalWaitTime.Add(int64(time.Since(start)))
	return nil
}

// MinInterval returns the configured spacing.
func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}

// Stats returns current statistics.
func (l *Limiter) Stats() Stats {
	acquired := l.totalAcquired.Load()
	var avg time.Duration
	if acquired > 0 {
		avg = time.Duration(l.totalWaitTime.Load() / acquired)
	}
	return Stats{
		TotalAcquired: acquired,
		MinInterval:   l.minInterval,
		AvgWaitTime:   avg,
	}
}
