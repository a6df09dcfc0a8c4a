// SPDX-License-Identifier: MPL-2.0

package modindex

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/fmm-go/fmm/pkg/modident"

	"github.com/charmbracelet/log"
)

// reservedFiles live in the mods directory but are never mods.
var reservedFiles = map[string]bool{
	"mod-list.json":    true,
	"mod-settings.dat": true,
}

type (
	// Index maps mod names to their installed packages, sorted ascending by version.
	Index struct {
		mods   map[string][]Entry
		logger *log.Logger
	}

	// Option configures an Index.
	Option func(*Index)
)

// WithLogger sets the logger used for per-entry diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(x *Index) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// New returns an empty index.
func New(opts ...Option) *Index {
	x := &Index{
		mods:   make(map[string][]Entry),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Build scans dir and indexes every mod package found in it.
// Malformed entries are skipped; only a failure to list dir is returned.
//
// When two entries carry the same name and version, the one listed later
// (os.ReadDir sorts by file name) replaces the earlier one.
func Build(dir string, opts ...Option) (*Index, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mods directory: %w", err)
	}

	x := New(opts...)
	for _, de := range dirEntries {
		name := de.Name()
		if reservedFiles[name] {
			continue
		}

		entry, err := inspect(dir, name, de.Type())
		if err != nil {
			x.logger.Debug("skipping mods directory entry", "path", name, "err", err)
			continue
		}

		if replaced := x.put(entry); replaced {
			x.logger.Debug("duplicate mod package replaced", "mod", entry.Ident, "path", name)
		}
	}

	return x, nil
}

// inspect classifies one directory entry and determines its identity,
// trying the file name first and the embedded info.json second.
func inspect(dir, name string, mode os.FileMode) (Entry, error) {
	kind, err := classify(name, mode)
	if err != nil {
		return Entry{}, err
	}

	path := filepath.Join(dir, name)
	if ident, ok := ParseFileName(name); ok {
		return Entry{Path: path, Kind: kind, Ident: ident}, nil
	}

	ident, err := ReadInfo(path, kind)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Path: path, Kind: kind, Ident: ident}, nil
}

// put inserts entry in sorted position, replacing an equal entry.
func (x *Index) put(entry Entry) (replaced bool) {
	entries := x.mods[entry.Ident.Name]
	idx, found := slices.BinarySearchFunc(entries, entry, Entry.Compare)
	if found {
		entries[idx] = entry
		return true
	}
	x.mods[entry.Ident.Name] = slices.Insert(entries, idx, entry)
	return false
}

// Add inserts entry in sorted position. It is a no-op returning false when
// a package with the same name and version is already indexed.
func (x *Index) Add(entry Entry) bool {
	if !entry.Ident.HasVersion() {
		return false
	}
	entries := x.mods[entry.Ident.Name]
	idx, found := slices.BinarySearchFunc(entries, entry, Entry.Compare)
	if found {
		return false
	}
	x.mods[entry.Ident.Name] = slices.Insert(entries, idx, entry)
	return true
}

// Resolve finds the package for id. With a version, only an exact match
// resolves; without one, the highest indexed version is returned.
func (x *Index) Resolve(id modident.Ident) (Entry, error) {
	entries := x.mods[id.Name]
	if len(entries) == 0 {
		return Entry{}, &NotFoundError{Ident: id}
	}

	if !id.HasVersion() {
		return entries[len(entries)-1], nil
	}

	idx, found := slices.BinarySearchFunc(entries, id, func(e Entry, target modident.Ident) int {
		return e.Ident.Compare(target)
	})
	if !found {
		return Entry{}, &NotFoundError{Ident: id}
	}
	return entries[idx], nil
}

// Contains reports whether id is indexed: any version when id has none,
// otherwise that exact version.
func (x *Index) Contains(id modident.Ident) bool {
	_, err := x.Resolve(id)
	return err == nil
}

// Has reports whether at least one version of the named mod is indexed.
func (x *Index) Has(name string) bool {
	return len(x.mods[name]) > 0
}

// Versions returns a copy of the named mod's packages in ascending version order.
func (x *Index) Versions(name string) []Entry {
	return slices.Clone(x.mods[name])
}

// Names returns every indexed mod name in lexical order.
func (x *Index) Names() []string {
	return slices.Sorted(maps.Keys(x.mods))
}

// Len returns the number of distinct mod names.
func (x *Index) Len() int {
	return len(x.mods)
}
