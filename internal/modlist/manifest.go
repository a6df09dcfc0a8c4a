// SPDX-License-Identifier: MPL-2.0

package modlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fmm-go/fmm/internal/modindex"
	"github.com/fmm-go/fmm/pkg/modident"
)

const (
	// FileName is the manifest's file name inside the mods directory.
	FileName = "mod-list.json"
	// BaseMod is the game's own content. It is always installed and
	// never disabled by DisableAll.
	BaseMod = "base"
)

type (
	// Record is the enablement state of one mod.
	Record struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
		// Version pins the mod to an exact version. It is only meaningful
		// when Enabled is true; nil means "use the latest available".
		Version *modident.Version `json:"version,omitempty"`
	}

	// Lookup is the view of the mod index the manifest validates against.
	Lookup interface {
		Resolve(id modident.Ident) (modindex.Entry, error)
		Has(name string) bool
	}

	// Manifest is the in-memory mod-list.json.
	Manifest struct {
		path    string
		records []Record
	}

	// document is the on-disk shape of mod-list.json.
	document struct {
		Mods []Record `json:"mods"`
	}
)

// New returns an empty manifest that will be persisted to path.
func New(path string) *Manifest {
	return &Manifest{path: path}
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &Manifest{path: path, records: doc.Mods}, nil
}

// Path returns the file the manifest is persisted to.
func (m *Manifest) Path() string { return m.path }

// Records returns a copy of all records in manifest order.
func (m *Manifest) Records() []Record {
	return slices.Clone(m.records)
}

// Get returns the record for name.
func (m *Manifest) Get(name string) (Record, bool) {
	if r := m.find(name); r != nil {
		return *r, true
	}
	return Record{}, false
}

// Enable switches the mod named by id on. The ident must resolve against idx.
// An explicit version in id pins the record to the resolved package's version;
// without one the pin is cleared so the latest version is used at load time.
// Enabling a mod that is already enabled changes nothing.
func (m *Manifest) Enable(idx Lookup, id modident.Ident) (Event, error) {
	entry, err := idx.Resolve(id)
	if err != nil {
		return Event{Kind: EventNotFound, Ident: id}, err
	}
	resolved := entry.Version()

	record := m.find(id.Name)
	if record != nil && record.Enabled {
		return Event{Kind: EventAlreadyEnabled, Ident: id, Version: &resolved}, nil
	}

	var pin *modident.Version
	if id.HasVersion() {
		pinned := resolved
		pin = &pinned
	}

	if record != nil {
		record.Enabled = true
		record.Version = pin
	} else {
		m.records = append(m.records, Record{Name: id.Name, Enabled: true, Version: pin})
	}

	return Event{Kind: EventEnabled, Ident: id, Version: &resolved}, nil
}

// Disable switches the mod named by id off and clears its pin. The base mod
// is always considered present; any other name must be in idx, otherwise
// nothing changes and an EventNotFound is returned.
func (m *Manifest) Disable(idx Lookup, id modident.Ident) Event {
	if id.Name != BaseMod && !idx.Has(id.Name) {
		return Event{Kind: EventNotFound, Ident: id}
	}

	if record := m.find(id.Name); record != nil {
		record.Enabled = false
		record.Version = nil
	}
	return Event{Kind: EventDisabled, Ident: id}
}

// DisableAll switches every record except the base mod off and clears its pin.
func (m *Manifest) DisableAll() Event {
	for i := range m.records {
		if m.records[i].Name == BaseMod {
			continue
		}
		m.records[i].Enabled = false
		m.records[i].Version = nil
	}
	return Event{Kind: EventDisabledAll}
}

// Register records a newly installed mod as disabled, adding a record if
// none exists yet.
func (m *Manifest) Register(name string) {
	if record := m.find(name); record != nil {
		record.Enabled = false
		record.Version = nil
		return
	}
	m.records = append(m.records, Record{Name: name})
}

// Persist writes the manifest to its path as indented JSON.
func (m *Manifest) Persist() error {
	records := m.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(document{Mods: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to replace %s: %w", FileName, err)
	}
	return nil
}

// IsNotExist reports whether err means the manifest file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (m *Manifest) find(name string) *Record {
	for i := range m.records {
		if m.records[i].Name == name {
			return &m.records[i]
		}
	}
	return nil
}
