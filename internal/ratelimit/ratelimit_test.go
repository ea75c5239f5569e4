package ratelimit

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limit, window)
	l.now = clock.now
	return l, clock
}

func TestAllow_WithinLimit(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		if !l.Allow() {
			t.Fatalf("request %d rejected, want all %d admitted", i+1, 10)
		}
	}
}

func TestAllow_RejectsOverLimit(t *testing.T) {
	l, _ := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		if !l.Allow() {
			t.Fatalf("request %d rejected within limit", i+1)
		}
	}
	if l.Allow() {
		t.Error("request 11 admitted, want rejected")
	}
	if l.Allow() {
		t.Error("request 12 admitted, want rejected")
	}
}

func TestAllow_ResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	for i := 0; i < 10; i++ {
		l.Allow()
	}
	if l.Allow() {
		t.Fatal("request over limit admitted before window elapsed")
	}

	clock.advance(time.Minute + time.Millisecond)

	for i := 0; i < 10; i++ {
		if !l.Allow() {
			t.Fatalf("request %d rejected after window reset", i+1)
		}
	}
	if l.Allow() {
		t.Error("request over limit admitted in new window")
	}
}

func TestAllow_RejectionDoesNotConsume(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	l.Allow()
	l.Allow()
	for i := 0; i < 5; i++ {
		if l.Allow() {
			t.Fatalf("rejected request %d admitted", i+1)
		}
	}

	// Rejections must not have extended or restarted the window.
	clock.advance(time.Minute + time.Millisecond)
	if !l.Allow() {
		t.Error("request rejected after window elapsed")
	}
}

func TestAllow_WindowBoundaryExclusive(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	if !l.Allow() {
		t.Fatal("first request rejected")
	}

	// Exactly at the window edge the old window still applies.
	clock.advance(time.Minute)
	if l.Allow() {
		t.Error("request admitted exactly at window edge, want rejected")
	}

	clock.advance(time.Nanosecond)
	if !l.Allow() {
		t.Error("request rejected just past window edge")
	}
}
