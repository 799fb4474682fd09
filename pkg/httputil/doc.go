// Package httputil fetches source images over HTTP.
//
// # Overview
//
// `quadart render https://...` and the HTTP API accept image URLs. This
// package provides the client side of that:
//
//   - [Fetcher]: size-limited GET with retries and observability hooks
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// [Retry] only repeats operations whose error is a [RetryableError].
// The fetcher marks these as retryable:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// A Retry-After header on 429 or 5xx responses stretches the next wait,
// up to [MaxRetryDelay].
//
// Everything else (404, 403, oversized bodies) fails immediately.
//
//	data, err := httputil.NewFetcher().Fetch(ctx, "https://example.com/photo.jpg")
//
// # Configuration
//
// Default settings:
//
//   - Attempts: 3
//   - Base backoff: 1 second, doubling
//   - Request timeout: 30 seconds
//   - Maximum body: 50 MiB
package httputil
