// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// InfoJSON renders a minimal info.json document.
func InfoJSON(name, version string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "version": %q,
  "title": %q,
  "factorio_version": "1.1",
  "dependencies": ["base >= 1.1"]
}`, name, version, name)
}

// WriteZipMod writes a zip archive named fileName into dir containing files
// (archive path -> content) and returns its path.
func WriteZipMod(t testing.TB, dir, fileName string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	WriteZip(t, path, files, nil)
	return path
}

// WriteDirMod creates an unpacked mod directory dir/dirName with the given info.json.
// An empty infoJSON creates the directory without metadata.
func WriteDirMod(t testing.TB, dir, dirName, infoJSON string) string {
	t.Helper()
	path := filepath.Join(dir, dirName)
	MustMkdirAll(t, path)
	if infoJSON != "" {
		MustWriteFile(t, filepath.Join(path, "info.json"), infoJSON)
	}
	return path
}

// WriteZip writes a zip archive to path. Members named in stored are written
// uncompressed; everything else is deflated. Members are written in
// lexical order of their names for reproducible archives.
func WriteZip(t testing.TB, path string, files map[string]string, stored map[string]bool) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	zw := zip.NewWriter(f)

	for _, name := range sortedKeys(files) {
		method := zip.Deflate
		if stored[name] {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close %s: %v", path, err)
	}
}
