package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/quadart/pkg/httputil"
)

// ErrUnavailable marks failures to reach a cache backend (dial errors,
// timeouts, dropped connections).
var ErrUnavailable = errors.New("cache backend unavailable")

// Backend retry settings. Cache writes sit on the render path, so waits
// stay short.
const (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond
)

// Retryable marks err as worth retrying. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *httputil.RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs a backend operation, repeating failures marked
// with [Retryable] a few times with a short doubling delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, retryAttempts, retryDelay, fn)
}
