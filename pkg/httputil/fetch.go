package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/quadart/pkg/buildinfo"
	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/observability"
)

// Fetcher defaults.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 50 << 20
	DefaultAttempts = 3
)

// Fetcher downloads source images.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a fetcher with default limits.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: DefaultTimeout},
		MaxBytes: DefaultMaxBytes,
		Attempts: DefaultAttempts,
		Delay:    time.Second,
	}
}

// Fetch GETs rawURL and returns the body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse URL")
	}

	var body []byte
	err = Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.get(ctx, u)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", rawURL)
		}
		var re *RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "image/*")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", u)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: not found", u)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{
			Err:   errors.New(errors.ErrCodeNetwork, "fetch %s: %s", u, resp.Status),
			After: retryAfter(resp.Header, time.Now()),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", u, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", u)}
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidSource, "fetch %s: body exceeds %s", u, humanBytes(limit))
	}
	return data, nil
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// Fetch downloads rawURL with a default [Fetcher].
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return NewFetcher().Fetch(ctx, rawURL)
}
