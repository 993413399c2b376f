// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"respack-cli/pkg/zippack"

	"github.com/charmbracelet/log"
)

// LocalDist is the distribution name assigned to packs found in the local
// pack directory. They have no installing distribution, so they share one
// synthetic namespace.
const LocalDist = "local"

const zipExt = ".zip"

// DirAdapter discovers zip-archive packs dropped into a directory. Each
// *.zip file becomes one registration under the LocalDist distribution,
// with the file's base name as the pack name and the archive's manifest
// supplying aliases.
type DirAdapter struct {
	dir    string
	logger *log.Logger
}

// NewDirAdapter builds a DirAdapter scanning the given directory. A missing
// directory is not an error; it simply contributes no registrations.
func NewDirAdapter(dir string, logger *log.Logger) *DirAdapter {
	return &DirAdapter{dir: dir, logger: logger}
}

// Enumerate implements Adapter.
func (a *DirAdapter) Enumerate() []Registration {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if a.logger != nil && !os.IsNotExist(err) {
			a.logger.Debug("local pack directory unreadable", "dir", a.dir, "err", err)
		}
		return nil
	}

	var regs []Registration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, zipExt) {
			continue
		}
		packName := strings.TrimSuffix(name, zipExt)
		// Per-archive manifest: foo.zip pairs with foo.toml, so several
		// packs can share the directory.
		pack := zippack.New(filepath.Join(a.dir, name), zippack.Options{
			ManifestPath: filepath.Join(a.dir, packName+".toml"),
		})
		regs = append(regs, Registration{
			DistName: LocalDist,
			PackName: packName,
			Pack:     pack,
			Aliases:  pack.Aliases(),
		})
	}
	return regs
}

// MultiAdapter concatenates the registrations of several adapters.
type MultiAdapter struct {
	Adapters []Adapter
}

// Enumerate implements Adapter.
func (m MultiAdapter) Enumerate() []Registration {
	var regs []Registration
	for _, adapter := range m.Adapters {
		regs = append(regs, adapter.Enumerate()...)
	}
	return regs
}
