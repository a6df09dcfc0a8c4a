// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fmm-go/fmm/internal/testutil"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zlib"
	"github.com/rogpeppe/go-internal/testscript"
)

// cmdMkZipMod creates <dir>/<name>_<version>.zip holding an info.json.
//
//	mkzipmod <dir> <name> <version>
func cmdMkZipMod(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 3 {
		ts.Fatalf("usage: mkzipmod <dir> <name> <version>")
	}
	dir, name, version := ts.MkAbs(args[0]), args[1], args[2]
	root := name + "_" + version

	writeZip(ts, filepath.Join(dir, root+".zip"), map[string][]byte{
		root + "/info.json": []byte(testutil.InfoJSON(name, version)),
		root + "/data.lua":  []byte("-- data stage\n"),
	})
}

// cmdMkDirMod creates an unpacked mod <dir>/<name> whose version is only
// recorded in its info.json.
//
//	mkdirmod <dir> <name> <version>
func cmdMkDirMod(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 3 {
		ts.Fatalf("usage: mkdirmod <dir> <name> <version>")
	}
	dir := filepath.Join(ts.MkAbs(args[0]), args[1])
	ts.Check(os.MkdirAll(dir, 0o755))
	ts.Check(os.WriteFile(filepath.Join(dir, "info.json"), []byte(testutil.InfoJSON(args[1], args[2])), 0o644))
}

// cmdMkSave writes a save archive. With -z the level state is stored as a
// zlib-compressed level.dat0; -campaign NAME marks it as a campaign save.
//
//	mksave [-z] [-campaign NAME] <path> <major.minor.patch> <scenario> <mod>...
func cmdMkSave(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mksave")
	}

	var compressed bool
	var campaign string
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-z":
			compressed = true
			args = args[1:]
		case "-campaign":
			if len(args) < 2 {
				ts.Fatalf("mksave: -campaign needs a value")
			}
			campaign = args[1]
			args = args[2:]
		default:
			ts.Fatalf("mksave: unknown flag %s", args[0])
		}
	}
	if len(args) < 3 {
		ts.Fatalf("usage: mksave [-z] [-campaign NAME] <path> <major.minor.patch> <scenario> <mod>...")
	}

	parts := strings.Split(args[1], ".")
	if len(parts) != 3 {
		ts.Fatalf("mksave: version must be major.minor.patch, got %q", args[1])
	}
	var version [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		ts.Check(err)
		version[i] = uint16(n)
	}

	level := testutil.EncodeLevel(testutil.LevelSpec{
		Major: version[0], Minor: version[1], Patch: version[2],
		Campaign:    campaign,
		Scenario:    args[2],
		ScenarioMod: "base",
		Mods:        args[3:],
	})

	path := ts.MkAbs(args[0])
	root := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	files := map[string][]byte{root + "/control.lua": []byte("-- scenario\n")}
	if compressed {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		_, err := zw.Write(level)
		ts.Check(err)
		ts.Check(zw.Close())
		files[root+"/level.dat0"] = buf.Bytes()
	} else {
		files[root+"/level.dat"] = level
	}
	writeZip(ts, path, files)
}

func writeZip(ts *testscript.TestScript, path string, files map[string][]byte) {
	ts.Check(os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	ts.Check(err)

	zw := zip.NewWriter(f)
	for name, data := range files {
		w, err := zw.Create(name)
		ts.Check(err)
		_, err = w.Write(data)
		ts.Check(err)
	}
	ts.Check(zw.Close())
	ts.Check(f.Close())
}
