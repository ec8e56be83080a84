package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped into errors from a backend that could not be
// reached at all, as opposed to one that answered with an error.
var ErrUnavailable = errors.New("cache backend unavailable")

// transientError marks an error worth another attempt.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Retryable marks err as transient so that [Backoff.Do] tries again.
// Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// Backoff retries an operation a fixed number of times, doubling the pause
// after each transient failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when connecting to a shared backend on startup.
var DefaultBackoff = Backoff{Attempts: 4, Delay: 250 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable],
// the attempts run out, or ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
