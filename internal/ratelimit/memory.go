package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a fixed-window per-minute limiter kept in process memory.
// Suitable for single-instance deployments only; instances do not share
// counters.
type MemoryLimiter struct {
	mu        sync.Mutex
	perMinute int
	windows   map[string]*window
	now       func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewMemoryLimiter creates an in-process limiter allowing perMinute requests
// per identifier per minute window.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		perMinute: perMinute,
		windows:   make(map[string]*window),
		now:       time.Now,
	}
}

func (l *MemoryLimiter) Check(ctx context.Context, identifier string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[identifier]
	if w == nil || now.Sub(w.start) >= time.Minute {
		w = &window{start: now}
		l.windows[identifier] = w
	}

	resetAt := w.start.Add(time.Minute)
	if w.count >= l.perMinute {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	w.count++
	return Result{
		Allowed:   true,
		Remaining: l.perMinute - w.count,
		ResetAt:   resetAt,
	}, nil
}
