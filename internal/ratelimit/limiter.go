package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a blocking sliding-window admission gate: at most limit
// operations may start within any trailing window. Capacity is fixed at
// construction. Safe for concurrent use.
type Limiter struct {
	mu    sync.Mutex
	ring  []time.Time // admission times, fixed capacity
	head  int         // index of the oldest admission
	count int

	window time.Duration
	now    func() time.Time
}

// New creates a Limiter admitting at most limit operations per window.
// A non-positive limit falls back to 1, a non-positive window to one second.
func New(limit int, window time.Duration) *Limiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &Limiter{
		ring:   make([]time.Time, limit),
		window: window,
		now:    time.Now,
	}
}

// Acquire blocks until the admission is within the limit, then records it
// and returns nil. Cancelling ctx aborts the wait with ctx.Err(); an aborted
// call records nothing.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		wait, ok := l.tryAdmit()
		if ok {
			return nil
		}

		// window is full: wait until the oldest admission ages out, then
		// re-check (another caller may have taken the freed slot)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryAdmit records an admission if the window has capacity, evicting aged-out
// records first. When the oldest record is still live it reports the time
// until that record leaves the window.
func (l *Limiter) tryAdmit() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for l.count == len(l.ring) {
		elapsed := now.Sub(l.ring[l.head])
		if elapsed < l.window {
			return l.window - elapsed, false
		}
		l.head = (l.head + 1) % len(l.ring)
		l.count--
	}

	l.ring[(l.head+l.count)%len(l.ring)] = now
	l.count++
	return 0, true
}

// Limit returns the configured capacity.
func (l *Limiter) Limit() int { return len(l.ring) }

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }
