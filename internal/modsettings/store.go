// SPDX-License-Identifier: MPL-2.0

// Package modsettings reads and writes mod-settings.dat, the PropertyTree
// document holding per-mod setting values.
package modsettings

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmm-go/fmm/internal/proptree"
)

const (
	// FileName is the settings file's name inside the mods directory.
	FileName = "mod-settings.dat"

	SectionStartup        = "startup"
	SectionRuntimeGlobal  = "runtime-global"
	SectionRuntimePerUser = "runtime-per-user"
)

// ErrSettingsShape is returned when a settings tree lacks the expected
// dictionary structure.
var ErrSettingsShape = errors.New("unexpected mod settings structure")

type (
	// ShapeError reports the node that did not have the expected kind.
	ShapeError struct {
		// Path names the node, e.g. "startup". Empty means the root.
		Path string
		Want proptree.Kind
		// Got is the actual kind; meaningless when Missing is set.
		Got     proptree.Kind
		Missing bool
	}

	// Store is an in-memory mod-settings.dat.
	Store struct {
		path   string
		header proptree.Header
		root   proptree.Tree
	}
)

func (e *ShapeError) Error() string {
	where := e.Path
	if where == "" {
		where = "root"
	}
	if e.Missing {
		return fmt.Sprintf("%s: %s %s is missing", ErrSettingsShape, where, e.Want)
	}
	return fmt.Sprintf("%s: %s is a %s, want %s", ErrSettingsShape, where, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error { return ErrSettingsShape }

// New returns a store with empty sections, persisted to path.
func New(path string, header proptree.Header) *Store {
	root := proptree.NewDictionary()
	for _, name := range []string{SectionStartup, SectionRuntimeGlobal, SectionRuntimePerUser} {
		root.Set(name, proptree.Dict(nil))
	}
	return &Store{path: path, header: header, root: proptree.Dict(root)}
}

// Load reads and decodes the settings file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	header, root, err := proptree.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", FileName, err)
	}
	return &Store{path: path, header: header, root: root}, nil
}

// Path returns the file the store is written to.
func (s *Store) Path() string { return s.path }

// Header returns the game version recorded in the file.
func (s *Store) Header() proptree.Header { return s.header }

// Settings returns the root node.
func (s *Store) Settings() proptree.Tree { return s.root }

// Section returns the named top-level dictionary.
func (s *Store) Section(name string) (*proptree.Dictionary, error) {
	root, ok := s.root.AsDictionary()
	if !ok {
		return nil, &ShapeError{Want: proptree.KindDictionary, Got: s.root.Kind()}
	}
	node, ok := root.Get(name)
	if !ok {
		return nil, &ShapeError{Path: name, Want: proptree.KindDictionary, Missing: true}
	}
	section, ok := node.AsDictionary()
	if !ok {
		return nil, &ShapeError{Path: name, Want: proptree.KindDictionary, Got: node.Kind()}
	}
	return section, nil
}

// MergeStartup copies every entry of settings into the startup section,
// replacing existing values under the same name. settings must be a
// dictionary. It returns the number of entries merged.
func (s *Store) MergeStartup(settings proptree.Tree) (int, error) {
	incoming, ok := settings.AsDictionary()
	if !ok {
		return 0, &ShapeError{Path: "save startup settings", Want: proptree.KindDictionary, Got: settings.Kind()}
	}
	startup, err := s.Section(SectionStartup)
	if err != nil {
		return 0, err
	}

	for name, value := range incoming.All() {
		startup.Set(name, value.Clone())
	}
	return incoming.Len(), nil
}

// Write encodes the store back to its path.
func (s *Store) Write() (err error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := s.path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", FileName, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		}
	}()

	w := bufio.NewWriter(f)
	if err := proptree.EncodeDocument(w, s.header, s.root); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", FileName, err)
	}
	return nil
}
