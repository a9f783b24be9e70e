// Package ratelimit spaces outbound requests to an upstream API.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Limiter guarantees at least MinInterval between the start of consecutive
// requests. It is safe for concurrent use; waiters are admitted one at a time.
type Limiter struct {
	minInterval time.Duration
	limiter     *rate.Limiter
	now         func() time.Time
}

// New creates a limiter. The first request is admitted immediately.
func New(minInterval time.Duration) *Limiter {
	l := rate.Inf
	if minInterval > 0 {
		l = rate.Every(minInterval)
	}
	return &Limiter{
		minInterval: minInterval,
		limiter:     rate.NewLimiter(l, 1),
		now:         time.Now,
	}
}

// Wait blocks until a request may be sent and records it as sent.
// It returns early with ctx.Err() when ctx is done; no slot is consumed then.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// TimeUntilReady reports how long the next caller would wait. It does not
// reserve anything.
func (l *Limiter) TimeUntilReady() time.Duration {
	if l.minInterval <= 0 {
		return 0
	}
	tokens := l.limiter.TokensAt(l.now())
	if tokens >= 1 {
		return 0
	}
	seconds := (1 - tokens) / float64(l.limiter.Limit())
	return time.Duration(math.Ceil(seconds * float64(time.Second)))
}

// MinInterval returns the configured spacing.
func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}
