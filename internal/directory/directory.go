// SPDX-License-Identifier: MPL-2.0

// Package directory ties a mods directory's index, its mod-list.json and its
// mod-settings.dat together behind the operations the CLI performs.
//
// Mutations are held in memory until Save; a batch of operations is
// persisted once.
package directory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fmm-go/fmm/internal/modindex"
	"github.com/fmm-go/fmm/internal/modlist"
	"github.com/fmm-go/fmm/internal/modsettings"
	"github.com/fmm-go/fmm/internal/proptree"
	"github.com/fmm-go/fmm/internal/savefile"
	"github.com/fmm-go/fmm/pkg/modident"

	"github.com/charmbracelet/log"
)

// ErrNoSettings is returned by SyncSettings when the directory has no
// mod-settings.dat.
var ErrNoSettings = errors.New("no " + modsettings.FileName + " in mods directory")

type (
	// Directory is an opened mods directory.
	Directory struct {
		path     string
		index    *modindex.Index
		manifest *modlist.Manifest
		settings *modsettings.Store
		logger   *log.Logger
	}

	// Option configures Open.
	Option func(*Directory)
)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Open indexes the mods in dir and loads its manifest. A missing
// mod-settings.dat is tolerated until settings are needed.
func Open(dir string, opts ...Option) (*Directory, error) {
	d := &Directory{path: dir, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(d)
	}

	index, err := modindex.Build(dir, modindex.WithLogger(d.logger))
	if err != nil {
		return nil, err
	}
	d.index = index

	manifest, err := modlist.Load(filepath.Join(dir, modlist.FileName))
	if err != nil {
		return nil, err
	}
	d.manifest = manifest

	settings, err := modsettings.Load(filepath.Join(dir, modsettings.FileName))
	switch {
	case err == nil:
		d.settings = settings
	case errors.Is(err, os.ErrNotExist):
		d.logger.Debug("no mod settings file", "dir", dir)
	default:
		return nil, err
	}

	d.logger.Debug("opened mods directory", "dir", dir, "mods", index.Len(), "records", len(manifest.Records()))
	return d, nil
}

// Path returns the mods directory.
func (d *Directory) Path() string { return d.path }

// Index returns the mod index.
func (d *Directory) Index() *modindex.Index { return d.index }

// Manifest returns the in-memory manifest.
func (d *Directory) Manifest() *modlist.Manifest { return d.manifest }

// Settings returns the settings store, or nil when the directory has none.
func (d *Directory) Settings() *modsettings.Store { return d.settings }

// Enable switches id on. It fails with modindex.ErrNotFound when id is not
// installed; the returned event then has kind EventNotFound.
func (d *Directory) Enable(id modident.Ident) (modlist.Event, error) {
	return d.manifest.Enable(d.index, id)
}

// Disable switches id off.
func (d *Directory) Disable(id modident.Ident) modlist.Event {
	return d.manifest.Disable(d.index, id)
}

// DisableAll switches every mod except base off.
func (d *Directory) DisableAll() modlist.Event {
	return d.manifest.DisableAll()
}

// Contains reports whether id is installed.
func (d *Directory) Contains(id modident.Ident) bool {
	return d.index.Contains(id)
}

// Add registers a newly installed package. The mod is recorded as disabled.
func (d *Directory) Add(entry modindex.Entry) modlist.Event {
	if !d.index.Add(entry) {
		d.logger.Debug("package already indexed", "path", entry.Path, "mod", entry.Ident)
	}
	d.manifest.Register(entry.Ident.Name)
	version := entry.Version()
	return modlist.Event{Kind: modlist.EventAdded, Ident: modident.New(entry.Ident.Name), Version: &version}
}

// SyncSettings merges the entries of a save's startup-settings dictionary
// into mod-settings.dat and writes it. Existing settings the save does not
// mention are kept.
func (d *Directory) SyncSettings(settings proptree.Tree) error {
	if d.settings == nil {
		return ErrNoSettings
	}
	n, err := d.settings.MergeStartup(settings)
	if err != nil {
		return err
	}
	if err := d.settings.Write(); err != nil {
		return err
	}
	d.logger.Debug("merged startup settings", "settings", n, "file", d.settings.Path())
	return nil
}

// ApplySave makes the enabled set match the mods a save requires: every mod
// is disabled, then each required mod other than base is enabled. Required
// mods that are not installed are reported as EventNotFound and skipped.
// Unless ignoreSettings is set, the save's startup settings are merged into
// mod-settings.dat.
//
// The manifest is not persisted; call Save.
func (d *Directory) ApplySave(meta *savefile.Metadata, ignoreSettings bool) ([]modlist.Event, error) {
	events := []modlist.Event{d.DisableAll()}

	for _, id := range meta.Mods {
		if id.Name == modlist.BaseMod {
			continue
		}
		ev, err := d.Enable(id)
		if err != nil && !errors.Is(err, modindex.ErrNotFound) {
			return events, err
		}
		events = append(events, ev)
	}

	switch {
	case ignoreSettings:
		d.logger.Debug("ignoring save startup settings", "save", meta.Path)
	case meta.StartupSettings == nil:
		d.logger.Debug("save has no startup settings", "save", meta.Path)
	default:
		if err := d.SyncSettings(*meta.StartupSettings); err != nil {
			return events, fmt.Errorf("failed to sync startup settings: %w", err)
		}
	}
	return events, nil
}

// Save persists the manifest.
func (d *Directory) Save() error {
	return d.manifest.Persist()
}
