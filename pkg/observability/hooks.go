// Package observability lets the CLI and server watch nameplate without
// the core packages importing a logger or metrics client.
//
// There is one hook interface per event source: [ArrangeHooks] for
// arrangement passes and gestures, [RenderHooks] for artifact rendering,
// [CacheHooks] for the artifact cache and [HTTPHooks] for the local HTTP
// view. Each starts as a no-op. The CLI installs hooks that log at debug
// level; a metrics exporter would register its own the same way:
//
//	observability.SetArrangeHooks(exporter)
//
// Libraries emit through the getters:
//
//	observability.Arrange().OnArrange(ctx, "spiral", len(cards), "refresh", time.Since(start))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Arrange Hooks
// =============================================================================

// ArrangeHooks receives events from the arrangement controller.
type ArrangeHooks interface {
	// OnArrange records one re-arrangement pass over a card set.
	OnArrange(ctx context.Context, strategy string, cards int, trigger string, duration time.Duration)

	// OnInteraction records a gesture step (drag, select, edit, done, cancel).
	// err is non-nil when the step was rejected.
	OnInteraction(ctx context.Context, action string, cardID int, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the local HTTP view.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnFeed records a render feed connection change; clients is the count after it.
	OnFeed(ctx context.Context, event string, clients int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopArrangeHooks is a no-op implementation of ArrangeHooks.
type NoopArrangeHooks struct{}

func (NoopArrangeHooks) OnArrange(context.Context, string, int, string, time.Duration) {}
func (NoopArrangeHooks) OnInteraction(context.Context, string, int, error)             {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnFeed(context.Context, string, int)                            {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook set. Reads are lock-free since hooks are
// looked up on every arrangement pass and request.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) set(v T) { s.p.Store(&v) }
func (s *slot[T]) reset()  { s.p.Store(nil) }

var (
	arrangeSlot = slot[ArrangeHooks]{noop: NoopArrangeHooks{}}
	renderSlot  = slot[RenderHooks]{noop: NoopRenderHooks{}}
	cacheSlot   = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot    = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetArrangeHooks registers arrangement hooks. A nil h is ignored. Call
// it during startup, before the first controller is built.
func SetArrangeHooks(h ArrangeHooks) {
	if h != nil {
		arrangeSlot.set(h)
	}
}

func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderSlot.set(h)
	}
}

func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Arrange() ArrangeHooks { return arrangeSlot.get() }
func Render() RenderHooks   { return renderSlot.get() }
func Cache() CacheHooks     { return cacheSlot.get() }
func HTTP() HTTPHooks       { return httpSlot.get() }

// Reset puts every hook set back to its no-op. Tests that install hooks
// defer it.
func Reset() {
	arrangeSlot.reset()
	renderSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
