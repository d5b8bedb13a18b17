package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryDecision classifies an error for the retry loop.
type retryDecision int

const (
	retryNever  retryDecision = iota // hand the error straight back
	retryOnce                        // one more attempt, then give up
	retryAlways                      // keep going until attempts run out
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. Schema violations get exactly one re-ask; truncation and
// context cancellation are never retried.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p in the retry decorator.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	reasksLeft := 1

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if reasksLeft == 0 {
				return nil, err
			}
			reasksLeft--
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delay(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func classify(err error) retryDecision {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}

	// Truncation means MaxTokens is misconfigured; asking again
	// produces the same truncated payload.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return retryNever
	}

	// A schema miss is usually model flakiness. One re-ask is worth
	// the tokens; more is throwing money at a prompt problem.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnce
	}

	// Rate limits, 5xx, and raw network errors are all transient.
	return retryAlways
}

// delay computes the backoff before the next attempt. Rate-limit errors
// carrying a Retry-After win over the exponential schedule.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))

	// ±20% jitter so concurrent clients spread out.
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
