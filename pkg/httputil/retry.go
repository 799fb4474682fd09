package httputil

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/quadart/pkg/errors"
)

// MaxRetryDelay caps a single wait, including waits a server asks for.
const MaxRetryDelay = 30 * time.Second

// RetryableError marks a failure that [Retry] may repeat. After, when set,
// is the wait the server requested through Retry-After.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn up to attempts times (at least once). Only errors wrapping
// a [RetryableError] are repeated. The wait starts at delay and doubles,
// but never falls below a server's Retry-After or exceeds [MaxRetryDelay].
// Cancellation returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := min(max(delay, re.After), MaxRetryDelay)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

// retryAfter reads a Retry-After header, which is either a number of
// seconds or an HTTP date. Unparseable or past values yield zero.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(0, time.Duration(secs)*time.Second)
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(0, t.Sub(now))
	}
	return 0
}
