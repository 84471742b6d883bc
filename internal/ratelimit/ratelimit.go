// Package ratelimit abstracts request rate limiting behind a small
// interface so the HTTP layer does not care whether limits are tracked
// in-process (single instance) or in Redis (multi-instance).
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter answers whether the caller identified by identifier may proceed.
type Limiter interface {
	Check(ctx context.Context, identifier string) (Result, error)
}
