// SPDX-License-Identifier: MPL-2.0

package modident

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1.1.87", want: "1.1.87"},
		{input: "0.0.1", want: "0.0.1"},
		{input: "2.0.0-rc.1", want: "2.0.0-rc.1"},
		{input: "", wantErr: true},
		{input: "1.2", wantErr: true},
		{input: "1", wantErr: true},
		{input: "v1.2.3", wantErr: true},
		{input: "1.2.3+build.5", wantErr: true},
		{input: "01.2.3", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "one.two.three", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) = %v, want error", tt.input, v)
				}
				if !errors.Is(err, ErrInvalidVersion) {
					t.Errorf("errors.Is(err, ErrInvalidVersion) = false for %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.10.0", "1.9.0", 1},
		{"2.0.0-rc.1", "2.0.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := MustParseVersion(tt.a).Compare(MustParseVersion(tt.b))
			if got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("zero sorts first", func(t *testing.T) {
		if got := (Version{}).Compare(MustParseVersion("0.0.0")); got != -1 {
			t.Errorf("Compare() = %d, want -1", got)
		}
	})
}

func TestNewVersion(t *testing.T) {
	v := NewVersion(1, 1, 104)
	if !v.Equal(MustParseVersion("1.1.104")) {
		t.Errorf("NewVersion(1, 1, 104) = %s", v)
	}
}

func TestVersion_JSON(t *testing.T) {
	type doc struct {
		Version *Version `json:"version,omitempty"`
	}

	v := MustParseVersion("0.4.2")
	data, err := json.Marshal(doc{Version: &v})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{"version":"0.4.2"}` {
		t.Errorf("Marshal() = %s", data)
	}

	data, err = json.Marshal(doc{})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{}` {
		t.Errorf("Marshal() of nil version = %s, want {}", data)
	}

	var d doc
	if err := json.Unmarshal([]byte(`{"version":"1.2"}`), &d); err == nil {
		t.Error("Unmarshal() accepted a two-component version")
	}
}
