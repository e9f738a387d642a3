package worker

import (
	"math"
	"time"
)

// RetryPolicy controls how many times a failed sheet sync is retried and
// how far apart the attempts are spaced.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// normalized fills unset fields with the worker defaults: 5 attempts,
// 2s initial delay doubling up to a minute.
func (r RetryPolicy) normalized() RetryPolicy {
	if r.MaxRetries <= 0 {
		r.MaxRetries = 5
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = 2 * time.Second
	}
	if r.MaxDelay <= 0 {
		r.MaxDelay = time.Minute
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}
	return r
}

// Backoff returns the wait before re-running the given attempt (1-based):
// the initial delay scaled by the factor once per prior failure, capped at
// MaxDelay.
func (r RetryPolicy) Backoff(attempt int) time.Duration {
	p := r.normalized()
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt-1)))
	if delay <= 0 || delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}
