// Package observability provides hooks for diagnostics and pipeline events.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive diagnostics from the core packages and stage events from the
// render pipeline.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (structured logger, metrics, test recorders)
//
// # Diagnostics
//
// The core packages never fail on malformed tree data; they degrade to safe
// defaults and report what happened through DiagnosticHooks. A blank label is
// an acceptable outcome for an interactive display, a crash is not. The CLI
// registers a hook that forwards diagnostics to its logger.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDiagnosticHooks(&myDiagnosticHooks{})
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Diagnostics().OnDiagnostic(ctx, "layout", "MISSING_SUITABILITY",
//	    "leaf has no suitability value, defaulting to 0.5", "id", id)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Diagnostic Hooks
// =============================================================================

// DiagnosticHooks receives degradation notices from the core packages.
//
// A diagnostic is not an error: the operation that emitted it has already
// recovered by substituting a safe default. Component names the emitting
// package ("semantics", "layout", "edgegraph", "scene", "tree"), code is a
// stable machine-readable tag, and kv carries optional key/value context in
// logger argument order.
type DiagnosticHooks interface {
	OnDiagnostic(ctx context.Context, component, code, msg string, kv ...any)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the visualization pipeline.
type PipelineHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, format string)
	OnDecodeComplete(ctx context.Context, format string, nodeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, leafCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDiagnosticHooks is a no-op implementation of DiagnosticHooks.
type NoopDiagnosticHooks struct{}

func (NoopDiagnosticHooks) OnDiagnostic(context.Context, string, string, string, ...any) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string) {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                        {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	diagnosticHooks DiagnosticHooks = NoopDiagnosticHooks{}
	pipelineHooks   PipelineHooks   = NoopPipelineHooks{}
	hooksMu         sync.RWMutex
)

// SetDiagnosticHooks registers custom diagnostic hooks.
// This should be called once at application startup before any tree is decoded.
func SetDiagnosticHooks(h DiagnosticHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diagnosticHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Diagnostics returns the registered diagnostic hooks.
func Diagnostics() DiagnosticHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diagnosticHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	diagnosticHooks = NoopDiagnosticHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
