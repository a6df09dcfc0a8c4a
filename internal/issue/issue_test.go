// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ModsDirNotFoundId,
		ModListNotFoundId,
		ModNotFoundId,
		NoLevelDatId,
		MalformedSaveId,
		CampaignSaveUnsupportedId,
		SettingsShapeId,
		ModSetNotFoundId,
		ConfigLoadFailedId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if ModsDirNotFoundId != 1 {
		t.Errorf("ModsDirNotFoundId = %d, want 1", ModsDirNotFoundId)
	}
	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d issues, want %d", len(Values()), len(ids))
	}
}

func TestValues_Ordered(t *testing.T) {
	values := Values()
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Fatalf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	tests := []struct {
		id   Id
		want string
	}{
		{NoLevelDatId, "Not a save file"},
		{CampaignSaveUnsupportedId, "Campaign saves are not supported"},
		{SettingsShapeId, "--ignore-startup-settings"},
		{ModSetNotFoundId, "sets: {"},
	}
	for _, tt := range tests {
		if msg := Get(tt.id).MarkdownMsg(); !strings.Contains(string(msg), tt.want) {
			t.Errorf("issue %d markdown missing %q", tt.id, tt.want)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(ModsDirNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() is empty")
	}
	links[0] = "modified"
	if issue.ExtLinks()[0] == "modified" {
		t.Error("ExtLinks() should return a copy")
	}
	if issue.DocLinks() != nil && len(issue.DocLinks()) != 0 {
		t.Error("DocLinks() should be empty")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotInput, gotStyle string
	render = func(in, stylePath string) (string, error) {
		gotInput, gotStyle = in, stylePath
		return "rendered", nil
	}

	out, err := Get(ModsDirNotFoundId).Render("dark")
	if err != nil || out != "rendered" {
		t.Fatalf("Render() = %q, %v", out, err)
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
	if !strings.Contains(gotInput, "## See also") || !strings.Contains(gotInput, "wiki.factorio.com") {
		t.Errorf("Render() input missing links section:\n%s", gotInput)
	}
}
