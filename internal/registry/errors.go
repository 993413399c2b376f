// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"strings"
)

// The resolution error taxonomy is a closed set: every resolution failure is
// one of these kinds, surfaced synchronously with a message sufficient to
// self-correct. Resolution is deterministic, so the registry never retries.
var (
	// ErrUnknownQualifiedPack is the sentinel error wrapped by UnknownQualifiedPackError.
	ErrUnknownQualifiedPack = errors.New("unknown qualified pack")
	// ErrUnknownPrefix is the sentinel error wrapped by UnknownPrefixError.
	ErrUnknownPrefix = errors.New("unknown resource pack prefix")
	// ErrAmbiguousPrefix is the sentinel error wrapped by AmbiguousPrefixError.
	ErrAmbiguousPrefix = errors.New("ambiguous resource pack prefix")
	// ErrNoDefaultPrefix is the sentinel error wrapped by NoDefaultPrefixError.
	ErrNoDefaultPrefix = errors.New("no default prefix configured")
)

type (
	// UnknownQualifiedPackError is returned when a fully-qualified prefix
	// names no registered pack. It wraps ErrUnknownQualifiedPack for
	// errors.Is() compatibility.
	UnknownQualifiedPackError struct {
		// Name is the qualified form that failed to resolve.
		Name string
		// Known lists every registered qualified name.
		Known []QualifiedName
	}

	// UnknownPrefixError is returned when a short prefix matches neither a
	// live mapping nor a recorded collision. It wraps ErrUnknownPrefix for
	// errors.Is() compatibility.
	UnknownPrefixError struct {
		// Prefix is the lowercased prefix that failed to resolve.
		Prefix string
		// Known lists every registered prefix.
		Known []string
	}

	// AmbiguousPrefixError is returned when a short prefix has been
	// claimed by two or more packs and no override resolves it. It wraps
	// ErrAmbiguousPrefix for errors.Is() compatibility.
	AmbiguousPrefixError struct {
		// Prefix is the contested prefix.
		Prefix string
		// Candidates lists every qualified name that claimed the prefix,
		// each usable as a fully-qualified alternative.
		Candidates []QualifiedName
	}

	// NoDefaultPrefixError is returned when a bare name is given and no
	// default prefix is configured. It wraps ErrNoDefaultPrefix for
	// errors.Is() compatibility.
	NoDefaultPrefixError struct {
		// Name is the bare resource name that could not be resolved.
		Name string
	}
)

// Error implements the error interface for UnknownQualifiedPackError.
func (e *UnknownQualifiedPackError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown qualified pack %q (no packs registered)", e.Name)
	}
	names := make([]string, len(e.Known))
	for i, q := range e.Known {
		names[i] = string(q)
	}
	return fmt.Sprintf("unknown qualified pack %q (known packs: %s)", e.Name, strings.Join(names, ", "))
}

// Unwrap returns ErrUnknownQualifiedPack for errors.Is() compatibility.
func (e *UnknownQualifiedPackError) Unwrap() error { return ErrUnknownQualifiedPack }

// Error implements the error interface for UnknownPrefixError.
func (e *UnknownPrefixError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown resource pack prefix %q (no prefixes registered)", e.Prefix)
	}
	return fmt.Sprintf("unknown resource pack prefix %q (known prefixes: %s)", e.Prefix, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownPrefix for errors.Is() compatibility.
func (e *UnknownPrefixError) Unwrap() error { return ErrUnknownPrefix }

// Error implements the error interface for AmbiguousPrefixError. The message
// names every contender as a ready-to-use fully-qualified alternative.
func (e *AmbiguousPrefixError) Error() string {
	alternatives := make([]string, len(e.Candidates))
	for i, q := range e.Candidates {
		alternatives[i] = fmt.Sprintf("%s:NAME", q)
	}
	return fmt.Sprintf(
		"resource pack prefix %q is ambiguous: claimed by %s; use a fully-qualified name (%s) or configure a prefix override",
		e.Prefix, joinQualified(e.Candidates), strings.Join(alternatives, " or "),
	)
}

// Unwrap returns ErrAmbiguousPrefix for errors.Is() compatibility.
func (e *AmbiguousPrefixError) Unwrap() error { return ErrAmbiguousPrefix }

// Error implements the error interface for NoDefaultPrefixError.
func (e *NoDefaultPrefixError) Error() string {
	return fmt.Sprintf("name %q has no prefix and no default prefix is configured", e.Name)
}

// Unwrap returns ErrNoDefaultPrefix for errors.Is() compatibility.
func (e *NoDefaultPrefixError) Unwrap() error { return ErrNoDefaultPrefix }

func joinQualified(names []QualifiedName) string {
	parts := make([]string, len(names))
	for i, q := range names {
		parts[i] = string(q)
	}
	return strings.Join(parts, ", ")
}
