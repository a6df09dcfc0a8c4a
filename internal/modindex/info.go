// SPDX-License-Identifier: MPL-2.0

package modindex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fmm-go/fmm/pkg/modident"

	"github.com/klauspost/compress/zip"
)

const (
	// InfoFileName is the metadata document every mod carries at its root.
	InfoFileName = "info.json"

	// maxInfoSize bounds how much of an info.json is read.
	maxInfoSize = 1 << 20
)

// InfoJSON is the subset of info.json this package relies on.
// Additional fields (title, author, dependencies, ...) are ignored.
type InfoJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseInfoJSON decodes an info.json document into a versioned ident.
func ParseInfoJSON(data []byte) (modident.Ident, error) {
	var info InfoJSON
	if err := json.Unmarshal(data, &info); err != nil {
		return modident.Ident{}, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
	}
	if strings.TrimSpace(info.Name) == "" {
		return modident.Ident{}, fmt.Errorf("%w: missing name", ErrMalformedMetadata)
	}
	v, err := modident.ParseVersion(info.Version)
	if err != nil {
		return modident.Ident{}, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
	}
	return modident.WithVersion(info.Name, v), nil
}

// ReadInfo reads and parses the info.json of the package at path.
func ReadInfo(path string, kind EntryKind) (modident.Ident, error) {
	var (
		data []byte
		err  error
	)
	switch kind {
	case EntrySymlink:
		// A symlink may point at a packaged archive rather than a directory.
		if fi, statErr := os.Stat(path); statErr == nil && fi.Mode().IsRegular() {
			data, err = readZipInfo(path)
		} else {
			data, err = readDirInfo(path)
		}
	case EntryDirectory:
		data, err = readDirInfo(path)
	case EntryZip:
		data, err = readZipInfo(path)
	default:
		return modident.Ident{}, fmt.Errorf("%w: %s", ErrUnsupportedEntry, path)
	}
	if err != nil {
		return modident.Ident{}, err
	}
	return ParseInfoJSON(data)
}

func readDirInfo(dir string) ([]byte, error) {
	f, err := os.Open(filepath.Join(dir, InfoFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", InfoFileName, err)
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, maxInfoSize))
}

// readZipInfo returns the first archive member whose path contains info.json.
func readZipInfo(path string) (data []byte, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, file := range zr.File {
		if !strings.Contains(file.Name, InfoFileName) {
			continue
		}
		rc, openErr := file.Open()
		if openErr != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, openErr)
		}
		defer func() { _ = rc.Close() }()

		return io.ReadAll(io.LimitReader(rc, maxInfoSize))
	}

	return nil, fmt.Errorf("%w: no %s in archive", ErrMalformedMetadata, InfoFileName)
}
