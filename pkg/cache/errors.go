package cache

import (
	"context"
	"errors"
	"time"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 100 * time.Millisecond
)

// transientError tags an error as worth retrying.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Retryable marks err as transient so RetryWithBackoff will retry it.
// A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsRetryable reports whether err (or anything it wraps) was marked
// with Retryable.
func IsRetryable(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// RetryWithBackoff runs fn up to three times, doubling the delay between
// attempts. Only errors marked Retryable are retried; everything else is
// returned as-is after the first attempt.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt, delay := 0, retryBaseDelay; ; attempt, delay = attempt+1, delay*2 {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == retryAttempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
