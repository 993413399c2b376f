// SPDX-License-Identifier: MPL-2.0

// Package resource defines the capability contract that every resource pack
// must satisfy, plus the value objects exchanged between packs and the
// registry.
//
// A pack is a named, independently supplied source of resources. Pack
// implementations are registered with the discovery layer and consumed
// through the Pack interface; the registry never inspects how a pack stores
// its content.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("resource not found")
	// ErrBinaryContent is the sentinel error wrapped by BinaryContentError.
	ErrBinaryContent = errors.New("binary content has no text form")
)

type (
	// Pack is the minimal capability contract for a resource source.
	//
	// GetResource returns the content for a resource name, or an error
	// wrapping ErrNotFound when the resource is absent. ListResources
	// enumerates every resource name the pack can serve; the result is
	// finite and each call produces a fresh, complete listing.
	Pack interface {
		GetResource(name string) (*Content, error)
		ListResources() ([]string, error)
	}

	// AliasProvider is an optional capability: packs that declare short
	// alias prefixes beyond their own pack name implement it.
	AliasProvider interface {
		Aliases() []string
	}

	// Prioritizer is an optional capability: packs that declare a relative
	// priority implement it. The registry records the value for display;
	// it does not adjudicate prefix collisions.
	Prioritizer interface {
		Priority() int
	}

	// InfoProvider is an optional capability: packs that carry descriptive
	// metadata implement it.
	InfoProvider interface {
		PackInfo() PackInfo
	}

	// PathResolver is an optional capability: packs whose resources exist
	// as addressable files implement it. The second return value reports
	// whether a path is available for the given resource.
	PathResolver interface {
		ResourcePath(name string) (string, bool)
	}

	// Content is the value object produced by a pack for a single resource.
	// It is created fresh on every fetch and never cached by the registry.
	Content struct {
		// Data is the raw resource payload.
		Data []byte
		// ContentType is the MIME type, e.g. "image/svg+xml".
		ContentType string
		// Encoding names the text encoding for text-based resources
		// (e.g. "utf-8"). Empty means the payload is binary.
		Encoding string
		// Metadata carries optional descriptive details.
		Metadata map[string]any
	}

	// Info is a lightweight descriptor used for listing resources without
	// loading payloads.
	Info struct {
		// Name is the resource name within its pack.
		Name string `json:"name"`
		// Pack is the qualified name of the owning pack (dist/pack).
		Pack string `json:"pack"`
		// ContentType is the MIME type hint, empty if unknown.
		ContentType string `json:"content_type,omitempty"`
	}

	// PackInfo is descriptive metadata a pack may declare about itself.
	PackInfo struct {
		// Description is a short human-readable summary.
		Description string `json:"description,omitempty"`
		// SourceURL points at the upstream content source.
		SourceURL string `json:"source_url,omitempty"`
		// LicenseSPDX is the SPDX identifier of the upstream license.
		LicenseSPDX string `json:"license_spdx,omitempty"`
	}

	// NotFoundError reports a resource absent from an otherwise-resolved
	// pack. It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		// Resource is the name that was requested.
		Resource string
		// Pack identifies the pack that was searched (optional).
		Pack string
		// Suggestions lists similarly named resources, if any.
		Suggestions []string
	}

	// BinaryContentError is returned by Content.Text for binary payloads.
	// It wraps ErrBinaryContent for errors.Is() compatibility.
	BinaryContentError struct {
		ContentType string
	}
)

// IsText reports whether the content carries a text encoding.
func (c *Content) IsText() bool {
	return c.Encoding != ""
}

// Text returns the payload decoded as text. Only UTF-8 compatible encodings
// are supported; binary content yields a BinaryContentError.
func (c *Content) Text() (string, error) {
	if !c.IsText() {
		return "", &BinaryContentError{ContentType: c.ContentType}
	}
	return string(c.Data), nil
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "resource %q not found", e.Resource)
	if e.Pack != "" {
		fmt.Fprintf(&msg, " in pack %s", e.Pack)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&msg, " (similar names: %s)", strings.Join(e.Suggestions, ", "))
	}
	return msg.String()
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for BinaryContentError.
func (e *BinaryContentError) Error() string {
	return fmt.Sprintf("cannot decode binary resource (%s) as text", e.ContentType)
}

// Unwrap returns ErrBinaryContent for errors.Is() compatibility.
func (e *BinaryContentError) Unwrap() error { return ErrBinaryContent }
