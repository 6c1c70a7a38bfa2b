package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrNetwork marks a transient failure talking to a remote backend.
	ErrNetwork = errors.New("network error")
)

// Retry settings for remote backends. Tests shorten RetryDelay.
var (
	RetryAttempts = 3
	RetryDelay    = 100 * time.Millisecond
)

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so RetryWithBackoff tries again.
// A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or RetryAttempts calls have failed. The wait starts at
// RetryDelay and doubles. Cancelling ctx stops the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= RetryAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
