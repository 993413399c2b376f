// SPDX-License-Identifier: MPL-2.0

// Package testutil provides in-memory pack fixtures shared by tests.
package testutil

import (
	"sort"

	"respack-cli/pkg/resource"
)

type (
	// Pack is an in-memory resource.Pack for tests. It optionally exposes
	// the alias, priority, and pack-info capabilities.
	Pack struct {
		// Resources maps resource name to content.
		Resources map[string]*resource.Content
		// AliasList is returned by Aliases().
		AliasList []string
		// PriorityValue is returned by Priority().
		PriorityValue int
		// Info is returned by PackInfo().
		Info resource.PackInfo
		// FailListing makes ListResources return ErrListingFailed.
		FailListing bool
	}

	listingError struct{}
)

// ErrListingFailed is returned by ListResources when FailListing is set.
var ErrListingFailed error = listingError{}

func (listingError) Error() string { return "listing failed" }

// TextContent builds a UTF-8 SVG content value for tests.
func TextContent(data string) *resource.Content {
	return &resource.Content{
		Data:        []byte(data),
		ContentType: "image/svg+xml",
		Encoding:    "utf-8",
	}
}

// NewPack builds an in-memory pack serving the given resource names with
// identical placeholder content.
func NewPack(names ...string) *Pack {
	resources := make(map[string]*resource.Content, len(names))
	for _, name := range names {
		resources[name] = TextContent("<svg><!-- " + name + " --></svg>")
	}
	return &Pack{Resources: resources, PriorityValue: 100}
}

// GetResource implements resource.Pack.
func (p *Pack) GetResource(name string) (*resource.Content, error) {
	content, ok := p.Resources[name]
	if !ok {
		return nil, &resource.NotFoundError{Resource: name}
	}
	return content, nil
}

// ListResources implements resource.Pack.
func (p *Pack) ListResources() ([]string, error) {
	if p.FailListing {
		return nil, ErrListingFailed
	}
	names := make([]string, 0, len(p.Resources))
	for name := range p.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Aliases implements resource.AliasProvider.
func (p *Pack) Aliases() []string { return p.AliasList }

// Priority implements resource.Prioritizer.
func (p *Pack) Priority() int { return p.PriorityValue }

// PackInfo implements resource.InfoProvider.
func (p *Pack) PackInfo() resource.PackInfo { return p.Info }
