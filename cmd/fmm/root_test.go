// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fmm-go/fmm/internal/config"
	"github.com/fmm-go/fmm/internal/modlist"
	"github.com/fmm-go/fmm/pkg/modident"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v0.4.0"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		want := "v0.4.0 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestSetup_VerboseFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	cfg.ModsDir = newModsDir(t)

	_, stderr, err := runFmm(t, cfg, "list")
	if err != nil {
		t.Fatalf("fmm list failed: %v", err)
	}
	if !strings.Contains(stderr, "opened mods directory") {
		t.Errorf("expected debug output with ui.verbose, got:\n%s", stderr)
	}
}

func TestSetup_QuietByDefault(t *testing.T) {
	t.Parallel()

	_, stderr, err := runFmm(t, configFor(newModsDir(t)), "list")
	if err != nil {
		t.Fatalf("fmm list failed: %v", err)
	}
	if strings.Contains(stderr, "DEBU") {
		t.Errorf("unexpected debug output:\n%s", stderr)
	}
}

func TestRenderEvent(t *testing.T) {
	t.Parallel()

	v := modident.MustParseVersion("1.3.0")
	tests := []struct {
		ev   modlist.Event
		want string
	}{
		{modlist.Event{Kind: modlist.EventEnabled, Ident: modident.New("flib"), Version: &v}, "Enabled flib v1.3.0"},
		{modlist.Event{Kind: modlist.EventAlreadyEnabled, Ident: modident.New("flib")}, "flib is already enabled"},
		{modlist.Event{Kind: modlist.EventDisabled, Ident: modident.WithVersion("flib", v)}, "Disabled flib@1.3.0"},
		{modlist.Event{Kind: modlist.EventDisabledAll}, "Disabled all mods"},
		{modlist.Event{Kind: modlist.EventNotFound, Ident: modident.New("ghost")}, "Could not find ghost"},
		{modlist.Event{Kind: modlist.EventAdded, Ident: modident.New("flib"), Version: &v}, "Added flib v1.3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := renderEvent(tt.ev); got != tt.want {
				t.Errorf("renderEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintEvents_CountsMissing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	missing := printEvents(&buf, []modlist.Event{
		{Kind: modlist.EventDisabledAll},
		{Kind: modlist.EventNotFound, Ident: modident.New("a")},
		{Kind: modlist.EventNotFound, Ident: modident.New("b")},
	})
	if missing != 2 {
		t.Errorf("missing = %d, want 2", missing)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 3 {
		t.Errorf("printed %d lines, want 3", lines)
	}
}
