// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about operator runs, link decisions and
// texture loads.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOperationHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Operation().OnOperationStart(ctx, "connect")
//	// ... run the operator ...
//	observability.Operation().OnOperationComplete(ctx, "connect", links, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Operation Hooks
// =============================================================================

// OperationHooks receives events from operators (load, apply, get, add,
// connect).
type OperationHooks interface {
	OnOperationStart(ctx context.Context, op string)
	// count is the operator's headline figure: textures loaded, nodes
	// updated, links created.
	OnOperationComplete(ctx context.Context, op string, count int, duration time.Duration, err error)
}

// =============================================================================
// Wiring Hooks
// =============================================================================

// WiringHooks receives one event per socket-pairing decision.
type WiringHooks interface {
	// OnLinkDecision records the outcome for one rule. from and to are
	// "node:socket" endpoints.
	OnLinkDecision(ctx context.Context, phase, from, to, outcome string)
}

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from texture loading.
type LoadHooks interface {
	// OnImageLoad records a load attempt; err is nil on success.
	OnImageLoad(ctx context.Context, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOperationHooks is a no-op implementation of OperationHooks.
type NoopOperationHooks struct{}

func (NoopOperationHooks) OnOperationStart(context.Context, string) {}
func (NoopOperationHooks) OnOperationComplete(context.Context, string, int, time.Duration, error) {
}

// NoopWiringHooks is a no-op implementation of WiringHooks.
type NoopWiringHooks struct{}

func (NoopWiringHooks) OnLinkDecision(context.Context, string, string, string, string) {}

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnImageLoad(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	operationHooks OperationHooks = NoopOperationHooks{}
	wiringHooks    WiringHooks    = NoopWiringHooks{}
	loadHooks      LoadHooks      = NoopLoadHooks{}
	hooksMu        sync.RWMutex
)

// SetOperationHooks registers custom operation hooks.
// This should be called once at application startup before any operator runs.
func SetOperationHooks(h OperationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		operationHooks = h
	}
}

// SetWiringHooks registers custom wiring hooks.
func SetWiringHooks(h WiringHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		wiringHooks = h
	}
}

// SetLoadHooks registers custom load hooks.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// Operation returns the registered operation hooks.
func Operation() OperationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return operationHooks
}

// Wiring returns the registered wiring hooks.
func Wiring() WiringHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return wiringHooks
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	operationHooks = NoopOperationHooks{}
	wiringHooks = NoopWiringHooks{}
	loadHooks = NoopLoadHooks{}
}
