// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"encoding/binary"
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// LevelSpec describes the header of a synthetic level.dat blob.
type LevelSpec struct {
	Major, Minor, Patch, Build uint16
	// Campaign is written into the campaign-name slot of the reserved bytes.
	Campaign    string
	Scenario    string
	ScenarioMod string
	Mods        []string
	// Trailer is appended verbatim after the mod list.
	Trailer []byte
}

// EncodeLevel serializes spec using the level.dat header layout.
func EncodeLevel(spec LevelSpec) []byte {
	var buf bytes.Buffer
	for _, v := range []uint16{spec.Major, spec.Minor, spec.Patch, spec.Build} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteByte(0)
	writeShortString(&buf, spec.Campaign)
	writeShortString(&buf, spec.Scenario)
	writeShortString(&buf, spec.ScenarioMod)
	buf.Write(make([]byte, 14))
	buf.WriteByte(byte(len(spec.Mods)))
	for _, mod := range spec.Mods {
		writeShortString(&buf, mod)
		buf.Write(make([]byte, 7))
	}
	buf.Write(spec.Trailer)
	return buf.Bytes()
}

// WriteSaveArchive writes a save zip at path holding level as
// "<save>/level.dat0" (zlib) when compressed, "<save>/level.dat" otherwise.
// A few unrelated members are added around it.
func WriteSaveArchive(t testing.TB, path string, level []byte, compressed bool) {
	t.Helper()
	root := trimExt(filepath.Base(path))
	files := map[string]string{
		root + "/control.lua":    "-- scenario script\n",
		root + "/level-init.dat": "\x00\x01",
	}
	if compressed {
		files[root+"/level.dat0"] = string(Zlib(t, level))
		files[root+"/level.dat1"] = string(Zlib(t, []byte("chunk")))
	} else {
		files[root+"/level.dat"] = string(level)
	}
	WriteZip(t, path, files, nil)
}

// Zlib compresses data with the zlib format.
func Zlib(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close failed: %v", err)
	}
	return buf.Bytes()
}

func writeShortString(buf *bytes.Buffer, s string) {
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
