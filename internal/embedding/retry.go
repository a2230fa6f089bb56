package embedding

import (
	"context"
	"math/rand"
	"time"
)

const (
	// DefaultMaxRetries bounds retries after the initial attempt.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the first backoff step.
	DefaultBaseDelay = 500 * time.Millisecond
)

// BackoffFunc returns the delay before the retry following the given attempt
// (0-based).
type BackoffFunc func(attempt int) time.Duration

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// NotifyFunc observes a retryable failure just before the retrier sleeps.
// The label identifies the operation being retried (e.g. "batch[0..10]").
type NotifyFunc func(label string, attempt int, err error, delay time.Duration)

// ExponentialBackoff returns doubling delays starting at base, with up to one
// extra base of uniform jitter.
func ExponentialBackoff(base time.Duration) BackoffFunc {
	if base <= 0 {
		base = DefaultBaseDelay
	}
	return func(attempt int) time.Duration {
		return base<<attempt + time.Duration(rand.Int63n(int64(base)))
	}
}

// Retrier re-runs provider calls that fail with retryable errors. The backoff
// schedule, sleep implementation, and retry notifications are all injectable
// so tests run without real elapsed time.
type Retrier struct {
	maxRetries int
	backoff    BackoffFunc
	sleep      SleepFunc
	notify     NotifyFunc
}

// RetryOption configures a Retrier.
type RetryOption func(*Retrier)

// WithMaxRetries caps retries after the initial attempt.
func WithMaxRetries(n int) RetryOption {
	return func(r *Retrier) {
		r.maxRetries = n
	}
}

// WithBackoff replaces the delay schedule.
func WithBackoff(fn BackoffFunc) RetryOption {
	return func(r *Retrier) {
		r.backoff = fn
	}
}

// WithSleep replaces the sleep implementation (for testing).
func WithSleep(fn SleepFunc) RetryOption {
	return func(r *Retrier) {
		r.sleep = fn
	}
}

// WithNotify registers a callback invoked before each retry sleep.
func WithNotify(fn NotifyFunc) RetryOption {
	return func(r *Retrier) {
		r.notify = fn
	}
}

// NewRetrier creates a Retrier with the default policy: up to three retries
// with exponential backoff starting at half a second.
func NewRetrier(opts ...RetryOption) *Retrier {
	r := &Retrier{
		maxRetries: DefaultMaxRetries,
		backoff:    ExponentialBackoff(DefaultBaseDelay),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs call, retrying when it fails with a rate limit (429) or server
// error (5xx). Non-retryable errors return immediately; once retries are
// exhausted the last error is returned without a further sleep.
func (r *Retrier) Do(ctx context.Context, label string, call func() error) error {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if attempt == r.maxRetries || !IsRetryable(lastErr) {
			return lastErr
		}

		delay := r.backoff(attempt)
		if r.notify != nil {
			r.notify(label, attempt, lastErr, delay)
		}
		if err := r.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
