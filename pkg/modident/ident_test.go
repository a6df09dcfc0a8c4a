// SPDX-License-Identifier: MPL-2.0

package modident

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input       string
		wantName    string
		wantVersion string
		wantErr     bool
	}{
		{input: "flib", wantName: "flib"},
		{input: "flib@0.12.9", wantName: "flib", wantVersion: "0.12.9"},
		{input: "Squeak Through", wantName: "Squeak Through"},
		{input: "Squeak Through@1.8.2", wantName: "Squeak Through", wantVersion: "1.8.2"},
		{input: "a@b@1.0.0", wantName: "a@b", wantVersion: "1.0.0"},
		{input: "", wantErr: true},
		{input: "@1.0.0", wantErr: true},
		{input: "flib@latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIdent) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidIdent", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if id.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", id.Name, tt.wantName)
			}
			if tt.wantVersion == "" {
				if id.HasVersion() {
					t.Errorf("Version = %s, want none", id.Version)
				}
				return
			}
			if !id.HasVersion() || id.Version.String() != tt.wantVersion {
				t.Errorf("Version = %v, want %s", id.Version, tt.wantVersion)
			}
		})
	}
}

func TestIdent_String(t *testing.T) {
	if got := New("flib").String(); got != "flib" {
		t.Errorf("String() = %q", got)
	}
	if got := WithVersion("flib", MustParseVersion("0.12.9")).String(); got != "flib@0.12.9" {
		t.Errorf("String() = %q", got)
	}
}

func TestIdent_Compare(t *testing.T) {
	idents := []Ident{
		WithVersion("b", MustParseVersion("1.0.0")),
		WithVersion("a", MustParseVersion("2.0.0")),
		New("a"),
		WithVersion("a", MustParseVersion("1.0.0")),
	}
	slices.SortFunc(idents, Ident.Compare)

	want := []string{"a", "a@1.0.0", "a@2.0.0", "b@1.0.0"}
	for i, id := range idents {
		if id.String() != want[i] {
			t.Errorf("idents[%d] = %s, want %s", i, id, want[i])
		}
	}
}

func TestIdent_GuaranteedVersion(t *testing.T) {
	v := MustParseVersion("1.0.0")
	if got := WithVersion("x", v).GuaranteedVersion(); !got.Equal(v) {
		t.Errorf("GuaranteedVersion() = %s, want %s", got, v)
	}

	defer func() {
		if recover() == nil {
			t.Error("GuaranteedVersion() on unversioned ident did not panic")
		}
	}()
	_ = New("x").GuaranteedVersion()
}
