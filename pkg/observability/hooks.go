// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about backend invocations and produced output files.
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
//	    observability.SetScanHooks(&myScanHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnBackendStart(ctx, "NPM", path)
//	// ... run backend ...
//	observability.Scan().OnBackendComplete(ctx, "NPM", path, "extracted", 1, duration, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from the scan orchestrator.
type ScanHooks interface {
	// OnBackendStart is called before a backend is asked about a source path.
	OnBackendStart(ctx context.Context, backend, path string)
	// OnBackendComplete is called after the invocation finished, whatever the
	// status ("not-applicable", "extracted" or "failed").
	OnBackendComplete(ctx context.Context, backend, path, status string, projects int, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events from the output writer.
type OutputHooks interface {
	// OnFileWritten records a produced BOM file.
	OnFileWritten(ctx context.Context, backend, path string, nodes, edges int)
	// OnFileReplaced records that an existing file was removed before writing.
	OnFileReplaced(ctx context.Context, backend, path string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnBackendStart(context.Context, string, string) {}
func (NoopScanHooks) OnBackendComplete(context.Context, string, string, string, int, time.Duration, error) {
}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnFileWritten(context.Context, string, string, int, int) {}
func (NoopOutputHooks) OnFileReplaced(context.Context, string, string)          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks   ScanHooks   = NoopScanHooks{}
	outputHooks OutputHooks = NoopOutputHooks{}
	hooksMu     sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scan.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
// This should be called once at application startup before any scan.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	outputHooks = NoopOutputHooks{}
}
