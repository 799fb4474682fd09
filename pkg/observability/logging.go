package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
// Failed stages are logged at error level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnDecodeStart(_ context.Context, inputBytes int) {
	h.Logger.Debug("decode started", "bytes", inputBytes)
}

func (h LogPipelineHooks) OnDecodeComplete(_ context.Context, width, height int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("decode failed", "error", err, "duration", d)
		return
	}
	h.Logger.Debug("decode finished", "width", width, "height", height, "duration", d)
}

func (h LogPipelineHooks) OnDecomposeStart(_ context.Context, width, height int) {
	h.Logger.Debug("decompose started", "width", width, "height", height)
}

func (h LogPipelineHooks) OnDecomposeComplete(_ context.Context, leaves int, truncated bool, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("decompose failed", "error", err, "duration", d)
		return
	}
	h.Logger.Debug("decompose finished", "leaves", leaves, "truncated", truncated, "duration", d)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, format string) {
	h.Logger.Debug("render started", "format", format)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, format string, outputBytes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("render failed", "format", format, "error", err, "duration", d)
		return
	}
	h.Logger.Debug("render finished", "format", format, "bytes", outputBytes, "duration", d)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes outgoing request events to a logger at debug level.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (h LogHTTPHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h LogHTTPHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogCacheHooks{}
	_ HTTPHooks     = LogHTTPHooks{}
)
