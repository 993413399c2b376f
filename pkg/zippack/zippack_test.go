// SPDX-License-Identifier: MPL-2.0

package zippack

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"respack-cli/pkg/resource"
)

func writeArchive(t *testing.T, dir string, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, "resources.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	w := zip.NewWriter(f)
	for name, body := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(body)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	return path
}

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, DefaultManifestName), []byte(body), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}

const sampleManifest = `
[pack]
description = "Sample icon pack"
version = "1.2.0"
source_url = "https://example.com/icons"
upstream_license = "MIT"
prefixes = ["sample", "smp"]

[contents]
format = "image/svg+xml"
`

func TestZipPack_GetResource(t *testing.T) {
	dir := t.TempDir()
	archive := writeArchive(t, dir, map[string]string{
		"lightbulb.svg":          "<svg>bulb</svg>",
		"outlined/lightbulb.svg": "<svg>outlined bulb</svg>",
	})
	writeManifest(t, dir, sampleManifest)

	pack := New(archive, Options{})

	t.Run("TopLevelEntry", func(t *testing.T) {
		content, err := pack.GetResource("lightbulb.svg")
		if err != nil {
			t.Fatalf("GetResource() error: %v", err)
		}
		if string(content.Data) != "<svg>bulb</svg>" {
			t.Errorf("Data = %q", content.Data)
		}
		if content.ContentType != "image/svg+xml" {
			t.Errorf("ContentType = %q, want manifest format", content.ContentType)
		}
		if content.Encoding != "utf-8" {
			t.Errorf("Encoding = %q, want utf-8 for SVG", content.Encoding)
		}
		if content.Metadata["pack_version"] != "1.2.0" {
			t.Errorf("Metadata = %v, want pack_version from manifest", content.Metadata)
		}
	})

	t.Run("NestedEntry", func(t *testing.T) {
		content, err := pack.GetResource("outlined/lightbulb.svg")
		if err != nil {
			t.Fatalf("GetResource() error: %v", err)
		}
		if string(content.Data) != "<svg>outlined bulb</svg>" {
			t.Errorf("Data = %q", content.Data)
		}
	})

	t.Run("MissWithSuggestions", func(t *testing.T) {
		_, err := pack.GetResource("lightbulb")
		if !errors.Is(err, resource.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		var notFound *resource.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error should be *resource.NotFoundError, got %T", err)
		}
		if len(notFound.Suggestions) != 2 {
			t.Errorf("Suggestions = %v, want both lightbulb entries", notFound.Suggestions)
		}
	})

	t.Run("MissWithoutSuggestions", func(t *testing.T) {
		_, err := pack.GetResource("zebra")
		var notFound *resource.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error should be *resource.NotFoundError, got %T", err)
		}
		if len(notFound.Suggestions) != 0 {
			t.Errorf("Suggestions = %v, want none", notFound.Suggestions)
		}
	})
}

func TestZipPack_ListResources(t *testing.T) {
	dir := t.TempDir()
	archive := writeArchive(t, dir, map[string]string{
		"b.svg":          "b",
		"a.svg":          "a",
		"variants/":      "",
		"variants/c.svg": "c",
	})

	pack := New(archive, Options{})
	names, err := pack.ListResources()
	if err != nil {
		t.Fatalf("ListResources() error: %v", err)
	}

	want := []string{"a.svg", "b.svg", "variants/c.svg"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestZipPack_ManifestDerivedAttributes(t *testing.T) {
	dir := t.TempDir()
	archive := writeArchive(t, dir, map[string]string{"a.svg": "a"})
	writeManifest(t, dir, sampleManifest)

	pack := New(archive, Options{})

	aliases := pack.Aliases()
	if len(aliases) != 2 || aliases[0] != "sample" || aliases[1] != "smp" {
		t.Errorf("Aliases() = %v", aliases)
	}

	info := pack.PackInfo()
	if info.Description != "Sample icon pack" {
		t.Errorf("Description = %q", info.Description)
	}
	if info.SourceURL != "https://example.com/icons" {
		t.Errorf("SourceURL = %q", info.SourceURL)
	}
	if info.LicenseSPDX != "MIT" {
		t.Errorf("LicenseSPDX = %q", info.LicenseSPDX)
	}
}

func TestZipPack_OptionsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	archive := writeArchive(t, dir, map[string]string{"readme.txt": "hello"})
	writeManifest(t, dir, sampleManifest)

	pack := New(archive, Options{
		ContentType: "text/plain",
		Aliases:     []string{"docs"},
		Info:        &resource.PackInfo{Description: "Override"},
	})

	content, err := pack.GetResource("readme.txt")
	if err != nil {
		t.Fatalf("GetResource() error: %v", err)
	}
	if content.ContentType != "text/plain" {
		t.Errorf("ContentType = %q, want override", content.ContentType)
	}
	if content.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8 for text/plain", content.Encoding)
	}

	if aliases := pack.Aliases(); len(aliases) != 1 || aliases[0] != "docs" {
		t.Errorf("Aliases() = %v, want [docs]", aliases)
	}
	if info := pack.PackInfo(); info.Description != "Override" {
		t.Errorf("Description = %q, want Override", info.Description)
	}
}

func TestZipPack_NoManifest(t *testing.T) {
	dir := t.TempDir()
	archive := writeArchive(t, dir, map[string]string{"blob.bin": "\x00\x01"})

	pack := New(archive, Options{})

	content, err := pack.GetResource("blob.bin")
	if err != nil {
		t.Fatalf("GetResource() error: %v", err)
	}
	if content.ContentType != "application/octet-stream" {
		t.Errorf("ContentType = %q, want fallback", content.ContentType)
	}
	if content.IsText() {
		t.Error("octet-stream content should be binary")
	}
	if content.Metadata != nil {
		t.Errorf("Metadata = %v, want nil without a manifest version", content.Metadata)
	}

	if info := pack.PackInfo(); info.Description != "Resource pack" {
		t.Errorf("Description = %q, want default", info.Description)
	}
	if aliases := pack.Aliases(); len(aliases) != 0 {
		t.Errorf("Aliases() = %v, want none", aliases)
	}
}

func TestZipPack_MissingArchive(t *testing.T) {
	pack := New(filepath.Join(t.TempDir(), "absent.zip"), Options{})

	if _, err := pack.ListResources(); err == nil {
		t.Error("ListResources() should fail for a missing archive")
	}
	if _, err := pack.GetResource("a.svg"); err == nil {
		t.Error("GetResource() should fail for a missing archive")
	}
}
