// SPDX-License-Identifier: MPL-2.0

package modindex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fmm-go/fmm/internal/testutil"
	"github.com/fmm-go/fmm/pkg/modident"
)

func v(s string) modident.Version { return modident.MustParseVersion(s) }

func TestParseFileName(t *testing.T) {
	tests := []struct {
		fileName    string
		wantName    string
		wantVersion string
		wantOK      bool
	}{
		{fileName: "flib_0.12.9.zip", wantName: "flib", wantVersion: "0.12.9", wantOK: true},
		{fileName: "flib_0.12.9", wantName: "flib", wantVersion: "0.12.9", wantOK: true},
		{fileName: "even_distribution_1.0.10.zip", wantName: "even_distribution", wantVersion: "1.0.10", wantOK: true},
		{fileName: "flib.zip", wantOK: false},
		{fileName: "flib_latest.zip", wantOK: false},
		{fileName: "flib_1.2.zip", wantOK: false},
		{fileName: "_1.0.0.zip", wantOK: false},
		{fileName: "flib_0.12.9.tar.gz", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			id, ok := ParseFileName(tt.fileName)
			if ok != tt.wantOK {
				t.Fatalf("ParseFileName(%q) ok = %v, want %v", tt.fileName, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if id.Name != tt.wantName || id.Version.String() != tt.wantVersion {
				t.Errorf("ParseFileName(%q) = %s, want %s@%s", tt.fileName, id, tt.wantName, tt.wantVersion)
			}
		})
	}
}

func TestParseInfoJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := ParseInfoJSON([]byte(testutil.InfoJSON("Krastorio2", "1.3.24")))
		if err != nil {
			t.Fatalf("ParseInfoJSON() failed: %v", err)
		}
		if id.String() != "Krastorio2@1.3.24" {
			t.Errorf("ParseInfoJSON() = %s", id)
		}
	})

	for name, doc := range map[string]string{
		"not json":        "{",
		"missing name":    `{"version": "1.0.0"}`,
		"missing version": `{"name": "x"}`,
		"loose version":   `{"name": "x", "version": "1.0"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInfoJSON([]byte(doc))
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Errorf("ParseInfoJSON() error = %v, want ErrMalformedMetadata", err)
			}
		})
	}
}

// buildModsDir lays out a mods directory covering every entry kind.
func buildModsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	// Fast path: name and version from the file name.
	testutil.WriteZipMod(t, dir, "flib_0.12.9.zip", map[string]string{
		"flib_0.12.9/info.json": testutil.InfoJSON("flib", "0.12.9"),
	})
	testutil.WriteZipMod(t, dir, "flib_0.9.2.zip", map[string]string{
		"flib_0.9.2/info.json": testutil.InfoJSON("flib", "0.9.2"),
	})
	// Slow path: archive with an unconventional name.
	testutil.WriteZipMod(t, dir, "RateCalculator.zip", map[string]string{
		"RateCalculator/locale/en/locale.cfg": "[mod-name]\n",
		"RateCalculator/info.json":            testutil.InfoJSON("RateCalculator", "3.2.1"),
	})
	// Slow path: unpacked directory.
	testutil.WriteDirMod(t, dir, "EditorExtensions", testutil.InfoJSON("EditorExtensions", "2.0.0"))
	// Fast path: unpacked directory with a versioned name.
	testutil.WriteDirMod(t, dir, "flib_0.10.0", "")

	// Noise that must be skipped.
	testutil.WriteDirMod(t, dir, "broken", `{"name": "broken"}`)
	testutil.WriteZipMod(t, dir, "no-info.zip", map[string]string{"readme.txt": "hi"})
	testutil.MustWriteFile(t, filepath.Join(dir, "notes.txt"), "not a mod")
	testutil.MustWriteFile(t, filepath.Join(dir, "mod-list.json"), `{"mods": []}`)
	testutil.MustWriteFile(t, filepath.Join(dir, "corrupt_1.0.0.zip.zip"), "garbage")

	return dir
}

func TestBuild(t *testing.T) {
	dir := buildModsDir(t)

	x, err := Build(dir)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	wantNames := []string{"EditorExtensions", "RateCalculator", "flib"}
	names := x.Names()
	if len(names) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", names, wantNames)
	}
	for i := range wantNames {
		if names[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	flib := x.Versions("flib")
	wantVersions := []string{"0.9.2", "0.10.0", "0.12.9"}
	if len(flib) != len(wantVersions) {
		t.Fatalf("Versions(flib) has %d entries, want %d", len(flib), len(wantVersions))
	}
	for i, want := range wantVersions {
		if got := flib[i].Version().String(); got != want {
			t.Errorf("Versions(flib)[%d] = %s, want %s", i, got, want)
		}
	}
	if flib[1].Kind != EntryDirectory {
		t.Errorf("flib 0.10.0 kind = %s, want directory", flib[1].Kind)
	}

	rc, err := x.Resolve(modident.New("RateCalculator"))
	if err != nil {
		t.Fatalf("Resolve(RateCalculator) failed: %v", err)
	}
	if rc.Kind != EntryZip || rc.Version().String() != "3.2.1" {
		t.Errorf("Resolve(RateCalculator) = %+v", rc)
	}
}

func TestBuild_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	src := t.TempDir()
	target := testutil.WriteDirMod(t, src, "dev-mod", testutil.InfoJSON("dev-mod", "0.1.0"))

	dir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(dir, "dev-mod")); err != nil {
		t.Fatalf("Symlink() failed: %v", err)
	}

	x, err := Build(dir)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	e, err := x.Resolve(modident.New("dev-mod"))
	if err != nil {
		t.Fatalf("Resolve(dev-mod) failed: %v", err)
	}
	if e.Kind != EntrySymlink {
		t.Errorf("Kind = %s, want symlink", e.Kind)
	}
}

func TestBuild_MissingDir(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Build() of missing directory succeeded")
	}
}

func TestBuild_DuplicateLastSeenWins(t *testing.T) {
	dir := t.TempDir()
	// "flib_1.0.0" (directory) sorts before "flib_1.0.0.zip".
	testutil.WriteDirMod(t, dir, "flib_1.0.0", "")
	testutil.WriteZipMod(t, dir, "flib_1.0.0.zip", map[string]string{
		"flib/info.json": testutil.InfoJSON("flib", "1.0.0"),
	})

	x, err := Build(dir)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	entries := x.Versions("flib")
	if len(entries) != 1 {
		t.Fatalf("Versions(flib) = %d entries, want 1", len(entries))
	}
	if entries[0].Kind != EntryZip {
		t.Errorf("kept %s entry, want the later zip", entries[0].Kind)
	}
}

func TestIndex_ResolveAndContains(t *testing.T) {
	x := New()
	for _, s := range []string{"1.0.0", "1.2.0", "1.1.0"} {
		x.Add(Entry{Path: "m_" + s, Kind: EntryDirectory, Ident: modident.WithVersion("m", v(s))})
	}

	latest, err := x.Resolve(modident.New("m"))
	if err != nil {
		t.Fatalf("Resolve(m) failed: %v", err)
	}
	if latest.Version().String() != "1.2.0" {
		t.Errorf("Resolve(m) = %s, want 1.2.0", latest.Version())
	}

	exact, err := x.Resolve(modident.WithVersion("m", v("1.1.0")))
	if err != nil {
		t.Fatalf("Resolve(m@1.1.0) failed: %v", err)
	}
	if exact.Path != "m_1.1.0" {
		t.Errorf("Resolve(m@1.1.0).Path = %q", exact.Path)
	}

	_, err = x.Resolve(modident.WithVersion("m", v("9.9.9")))
	var nf *NotFoundError
	if !errors.As(err, &nf) || !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(m@9.9.9) error = %v, want NotFoundError", err)
	}
	if _, err := x.Resolve(modident.New("other")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(other) error = %v, want ErrNotFound", err)
	}

	checks := []struct {
		id   modident.Ident
		want bool
	}{
		{modident.New("m"), true},
		{modident.WithVersion("m", v("1.2.0")), true},
		{modident.WithVersion("m", v("1.3.0")), false},
		{modident.New("other"), false},
	}
	for _, c := range checks {
		if got := x.Contains(c.id); got != c.want {
			t.Errorf("Contains(%s) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestIndex_Add(t *testing.T) {
	x := New()
	e := Entry{Path: "a", Kind: EntryZip, Ident: modident.WithVersion("a", v("1.0.0"))}

	if !x.Add(e) {
		t.Error("first Add() returned false")
	}
	if x.Add(Entry{Path: "other-path", Kind: EntryZip, Ident: e.Ident}) {
		t.Error("second Add() of the same ident returned true")
	}
	if got := x.Versions("a"); len(got) != 1 || got[0].Path != "a" {
		t.Errorf("Versions(a) = %+v, want the original entry only", got)
	}
	if x.Add(Entry{Path: "b", Ident: modident.New("b")}) {
		t.Error("Add() accepted an entry without a version")
	}
}
