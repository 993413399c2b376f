// SPDX-License-Identifier: MPL-2.0

package registry

import "sync"

// The process-wide default registry is an explicit, resettable
// single-assignment cell rather than ambient global state: it is created on
// first access, persists for the process lifetime, and is never reset
// implicitly. Tests that need isolation call ResetDefault and build their
// own instance.
var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it with zero Options
// (environment-driven configuration only) on first access.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = New(Options{})
	}
	return defaultRegistry
}

// ResetDefault discards the process-wide registry so the next Default call
// builds a fresh one.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = nil
}
