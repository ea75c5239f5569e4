// Package ratelimit implements a fixed-window request counter. The window
// resets at fixed boundaries rather than sliding, so up to twice the limit
// can be admitted across a boundary; that tolerance is accepted for the low
// request volumes this gateway serves.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window rate limiter. Construct one per process and
// pass it by handle to request handlers; it is safe for concurrent use.
type Limiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	count       int
	windowStart time.Time
	now         func() time.Time
}

// New creates a limiter admitting at most limit requests per window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether a request may proceed. An elapsed window resets the
// counter before the check; a rejected request leaves the counters
// untouched.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}
