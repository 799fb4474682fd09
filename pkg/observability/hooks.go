// Package observability lets callers watch the render pipeline, the cache
// and remote image fetches without the library depending on a metrics or
// tracing backend.
//
// Each event family has a hook interface, a no-op implementation that is
// installed by default, and a setter. Libraries emit events through the
// accessors:
//
//	observability.Pipeline().OnDecomposeStart(ctx, width, height)
//
// and binaries swap in real hooks once at startup. [LogPipelineHooks],
// [LogCacheHooks] and [LogHTTPHooks] forward events to a charmbracelet
// logger; quadart installs them under --verbose.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks observes the decode, decompose and render stages.
type PipelineHooks interface {
	OnDecodeStart(ctx context.Context, inputBytes int)
	OnDecodeComplete(ctx context.Context, width, height int, duration time.Duration, err error)

	OnDecomposeStart(ctx context.Context, width, height int)
	OnDecomposeComplete(ctx context.Context, leaves int, truncated bool, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, outputBytes int, duration time.Duration, err error)
}

// CacheHooks observes cache lookups. keyType is "artifact" or "source".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes outgoing image fetches.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for transport failures, not for error status codes.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, int)                                   {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, int, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnDecomposeStart(context.Context, int, int)                           {}
func (NoopPipelineHooks) OnDecomposeComplete(context.Context, int, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error)  {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds one registered hook. The box keeps atomic.Pointer happy with
// interface values of differing concrete types.
type slot[T any] struct {
	p    atomic.Pointer[box[T]]
	noop T
}

type box[T any] struct{ h T }

func (s *slot[T]) load() T {
	if b := s.p.Load(); b != nil {
		return b.h
	}
	return s.noop
}

func (s *slot[T]) store(h T) { s.p.Store(&box[T]{h}) }
func (s *slot[T]) reset()    { s.p.Store(nil) }

var (
	pipelineSlot = &slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = &slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = &slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.load() }
func Cache() CacheHooks       { return cacheSlot.load() }
func HTTP() HTTPHooks         { return httpSlot.load() }

// Reset reinstalls the no-op hooks.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
