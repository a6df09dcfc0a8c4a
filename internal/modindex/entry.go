// SPDX-License-Identifier: MPL-2.0

package modindex

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fmm-go/fmm/pkg/modident"
)

const (
	// EntryDirectory is an unpacked mod directory.
	EntryDirectory EntryKind = iota + 1
	// EntrySymlink is a symlink to an unpacked mod directory.
	EntrySymlink
	// EntryZip is a packaged mod archive.
	EntryZip
)

const zipSuffix = ".zip"

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("mod not found")
	// ErrMalformedMetadata is returned when neither the file name nor info.json
	// yields a usable name and version.
	ErrMalformedMetadata = errors.New("malformed mod metadata")
	// ErrUnsupportedEntry is returned for directory entries that cannot hold a mod.
	ErrUnsupportedEntry = errors.New("unsupported mod entry")
)

type (
	// EntryKind classifies the on-disk representation of a mod package.
	EntryKind int

	// Entry is one physical mod package: one file-system entry is one version.
	Entry struct {
		// Path is the absolute or mods-dir-relative path of the package.
		Path string
		// Kind is how the package is stored on disk.
		Kind EntryKind
		// Ident is the parsed identity. Its Version is always set.
		Ident modident.Ident
	}

	// NotFoundError is returned when an ident cannot be resolved against the index.
	// It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Ident modident.Ident
	}
)

// String returns a human-readable name for the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryDirectory:
		return "directory"
	case EntrySymlink:
		return "symlink"
	case EntryZip:
		return "zip"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mod %s does not exist", e.Ident)
}

// Unwrap returns ErrNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Version returns the entry's version.
func (e Entry) Version() modident.Version {
	return e.Ident.GuaranteedVersion()
}

// Compare orders entries by ident.
func (e Entry) Compare(other Entry) int {
	return e.Ident.Compare(other.Ident)
}

// classify determines how a directory entry stores a mod.
func classify(name string, mode fs.FileMode) (EntryKind, error) {
	switch {
	case mode&fs.ModeSymlink != 0:
		return EntrySymlink, nil
	case mode.IsDir():
		return EntryDirectory, nil
	case mode.IsRegular() && strings.HasSuffix(name, zipSuffix):
		return EntryZip, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEntry, name)
	}
}

// ParseFileName extracts the identity from a "<Name>_<Version>[.zip]" file name.
// The version is parsed strictly; the last underscore separates name and version.
func ParseFileName(fileName string) (modident.Ident, bool) {
	base := strings.TrimSuffix(fileName, zipSuffix)
	idx := strings.LastIndexByte(base, '_')
	if idx <= 0 {
		return modident.Ident{}, false
	}
	v, err := modident.ParseVersion(base[idx+1:])
	if err != nil {
		return modident.Ident{}, false
	}
	return modident.WithVersion(base[:idx], v), true
}
