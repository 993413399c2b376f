// SPDX-License-Identifier: MPL-2.0

// Package zippack implements a resource pack backed by a zip archive on
// disk, with an optional TOML manifest describing the pack.
//
// The archive is opened per operation and never held open; the manifest and
// the resource listing are loaded lazily and cached for the pack's lifetime.
package zippack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"respack-cli/pkg/resource"

	"github.com/pelletier/go-toml/v2"
)

// DefaultManifestName is the manifest file looked up next to the archive
// when no explicit manifest path is configured.
const DefaultManifestName = "pack.toml"

const fallbackContentType = "application/octet-stream"

// suggestionLimit caps the similar-name hints attached to a NotFoundError.
const suggestionLimit = 5

type (
	// Manifest is the on-disk pack description.
	Manifest struct {
		Pack     ManifestPack     `toml:"pack"`
		Contents ManifestContents `toml:"contents"`
	}

	// ManifestPack describes the pack itself.
	ManifestPack struct {
		Description     string   `toml:"description"`
		Version         string   `toml:"version"`
		SourceURL       string   `toml:"source_url"`
		UpstreamLicense string   `toml:"upstream_license"`
		Prefixes        []string `toml:"prefixes"`
	}

	// ManifestContents describes the archived resources.
	ManifestContents struct {
		// Format is the MIME type shared by the archive's resources.
		Format string `toml:"format"`
	}

	// Options overrides manifest-derived pack attributes. Zero fields defer
	// to the manifest.
	Options struct {
		// ManifestPath locates the manifest file. Empty selects pack.toml
		// in the archive's directory.
		ManifestPath string
		// ContentType overrides the manifest's contents.format.
		ContentType string
		// Aliases overrides the manifest's pack.prefixes.
		Aliases []string
		// Info overrides the manifest-derived pack metadata.
		Info *resource.PackInfo
	}

	// ZipPack serves resources from a zip archive. It implements
	// resource.Pack plus the AliasProvider and InfoProvider capabilities.
	ZipPack struct {
		archivePath  string
		manifestPath string
		opts         Options

		manifestOnce sync.Once
		manifest     Manifest

		listOnce sync.Once
		names    []string
		listErr  error
	}
)

// New builds a ZipPack for the archive at the given path. The archive is not
// opened until a resource operation needs it, so constructing a pack for a
// missing archive succeeds; the first fetch or listing reports the problem.
func New(archivePath string, opts Options) *ZipPack {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(filepath.Dir(archivePath), DefaultManifestName)
	}
	return &ZipPack{
		archivePath:  archivePath,
		manifestPath: manifestPath,
		opts:         opts,
	}
}

// ArchivePath returns the location of the backing archive.
func (p *ZipPack) ArchivePath() string { return p.archivePath }

// Manifest returns the parsed manifest. A missing or malformed manifest file
// degrades to the zero Manifest; the pack stays usable on defaults.
func (p *ZipPack) Manifest() Manifest {
	p.manifestOnce.Do(func() {
		data, err := os.ReadFile(p.manifestPath)
		if err != nil {
			return
		}
		var m Manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return
		}
		p.manifest = m
	})
	return p.manifest
}

// ContentType returns the MIME type served for every resource in the
// archive: the configured override, then the manifest's contents.format,
// then application/octet-stream.
func (p *ZipPack) ContentType() string {
	if p.opts.ContentType != "" {
		return p.opts.ContentType
	}
	if format := p.Manifest().Contents.Format; format != "" {
		return format
	}
	return fallbackContentType
}

// GetResource implements resource.Pack. A miss returns a NotFoundError
// carrying up to five similarly named resources.
func (p *ZipPack) GetResource(name string) (*resource.Content, error) {
	archive, err := zip.OpenReader(p.archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", p.archivePath, err)
	}
	defer archive.Close()

	file, err := archive.Open(name)
	if err != nil {
		return nil, &resource.NotFoundError{
			Resource:    name,
			Suggestions: p.similarNames(name),
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, p.archivePath, err)
	}

	contentType := p.ContentType()
	content := &resource.Content{
		Data:        data,
		ContentType: contentType,
	}
	if isTextType(contentType) {
		content.Encoding = "utf-8"
	}
	if version := p.Manifest().Pack.Version; version != "" {
		content.Metadata = map[string]any{"pack_version": version}
	}
	return content, nil
}

// ListResources implements resource.Pack: every file entry in the archive,
// sorted, directories excluded. The listing is computed once and cached.
func (p *ZipPack) ListResources() ([]string, error) {
	p.listOnce.Do(func() {
		archive, err := zip.OpenReader(p.archivePath)
		if err != nil {
			p.listErr = fmt.Errorf("opening archive %s: %w", p.archivePath, err)
			return
		}
		defer archive.Close()

		for _, file := range archive.File {
			if strings.HasSuffix(file.Name, "/") {
				continue
			}
			p.names = append(p.names, file.Name)
		}
		sort.Strings(p.names)
	})
	if p.listErr != nil {
		return nil, p.listErr
	}
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out, nil
}

// Aliases implements resource.AliasProvider: the configured aliases, or the
// manifest's pack.prefixes.
func (p *ZipPack) Aliases() []string {
	if p.opts.Aliases != nil {
		return p.opts.Aliases
	}
	return p.Manifest().Pack.Prefixes
}

// PackInfo implements resource.InfoProvider.
func (p *ZipPack) PackInfo() resource.PackInfo {
	if p.opts.Info != nil {
		return *p.opts.Info
	}
	m := p.Manifest().Pack
	info := resource.PackInfo{
		Description: m.Description,
		SourceURL:   m.SourceURL,
		LicenseSPDX: m.UpstreamLicense,
	}
	if info.Description == "" {
		info.Description = "Resource pack"
	}
	return info
}

// similarNames finds listing entries related to a missed name by
// case-insensitive substring containment in either direction.
func (p *ZipPack) similarNames(name string) []string {
	available, err := p.ListResources()
	if err != nil {
		return nil
	}
	lowered := strings.ToLower(name)
	var out []string
	for _, candidate := range available {
		candidateLowered := strings.ToLower(candidate)
		if strings.Contains(candidateLowered, lowered) || strings.Contains(lowered, candidateLowered) {
			out = append(out, candidate)
			if len(out) == suggestionLimit {
				break
			}
		}
	}
	return out
}

// isTextType mirrors the registry's notion of text content: text/* types
// plus SVG, which is XML text despite its image/ prefix.
func isTextType(contentType string) bool {
	return strings.HasPrefix(contentType, "text/") || contentType == "image/svg+xml"
}
