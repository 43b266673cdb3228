package translate

import (
	"context"
	"time"
)

// RetryPolicy bounds retries of rate-limited requests
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first
	MaxRetries int
	// BaseDelay is the backoff before the first retry; it doubles on
	// every further retry
	BaseDelay time.Duration
	// MaxDelay caps a single backoff sleep
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// Delay returns the backoff before retry number attempt (zero-based):
// BaseDelay << attempt, capped at MaxDelay. Non-decreasing in attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := p.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// sleep waits for the given duration unless the context is cancelled first
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
