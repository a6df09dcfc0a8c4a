// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fmm-go/fmm/internal/issue"
	"github.com/fmm-go/fmm/internal/testutil"
)

func TestSaveInfo(t *testing.T) {
	t.Parallel()

	save := filepath.Join(t.TempDir(), "rail-world.zip")
	testutil.WriteSaveArchive(t, save, testutil.EncodeLevel(testutil.LevelSpec{
		Major: 1, Minor: 1, Patch: 87,
		Scenario: "freeplay", ScenarioMod: "base",
		Mods: []string{"base", "flib"},
	}), false)

	stdout, _, err := runFmm(t, configFor(t.TempDir()), "save", "info", save)
	if err != nil {
		t.Fatalf("fmm save info failed: %v", err)
	}
	for _, want := range []string{"game version: 1.1.87", "scenario: freeplay", "startup settings: none", "  * base", "  - flib"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestSaveInfo_Campaign(t *testing.T) {
	t.Parallel()

	save := filepath.Join(t.TempDir(), "tutorial.zip")
	testutil.WriteSaveArchive(t, save, testutil.EncodeLevel(testutil.LevelSpec{
		Major: 1, Minor: 1, Campaign: "tutorial", Scenario: "level-01", Mods: []string{"base"},
	}), false)

	_, _, err := runFmm(t, configFor(t.TempDir()), "save", "info", save)
	assertIssue(t, err, issue.CampaignSaveUnsupportedId)
}
