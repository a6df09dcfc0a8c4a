// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name?: string & !=""
	tags?: [...string]
	nested?: {
		count?: int & >=0
	}
}
`

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "test.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	err := FormatError(errors.New("some error"), "test.cue")
	if err == nil || !strings.Contains(err.Error(), "test.cue") || !strings.Contains(err.Error(), "some error") {
		t.Errorf("FormatError() = %v, want file path and message", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"ui"}, "ui"},
		{[]string{"sets", "ci", "1"}, "sets.ci[1]"},
		{[]string{"0", "name"}, "0.name"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "ok.cue"); err != nil {
		t.Errorf("CheckFileSize() at limit = %v", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "big.cue")
	if err == nil || !strings.Contains(err.Error(), "big.cue") {
		t.Errorf("CheckFileSize() over limit = %v", err)
	}
}

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		m, err := DecodeMap(testSchema, "#Doc", []byte(`name: "x", nested: count: 2`), "doc.cue")
		if err != nil {
			t.Fatalf("DecodeMap() failed: %v", err)
		}
		if m["name"] != "x" {
			t.Errorf("name = %v, want x", m["name"])
		}
		nested, ok := m["nested"].(map[string]any)
		if !ok {
			t.Fatalf("nested = %T, want map", m["nested"])
		}
		if _, ok := m["tags"]; ok {
			t.Error("unset optional field was decoded")
		}
		if nested["count"] == nil {
			t.Error("nested.count missing")
		}
	})

	t.Run("schema violation names the path", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMap(testSchema, "#Doc", []byte(`nested: count: -1`), "doc.cue")
		if err == nil || !strings.Contains(err.Error(), "nested.count") {
			t.Errorf("DecodeMap() error = %v, want nested.count in message", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		if _, err := DecodeMap(testSchema, "#Doc", []byte(`bogus: 1`), "doc.cue"); err == nil {
			t.Error("DecodeMap() accepted a field outside the closed definition")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMap(testSchema, "#Doc", []byte(`name: "x`), "doc.cue")
		if err == nil || !strings.Contains(err.Error(), "doc.cue") {
			t.Errorf("DecodeMap() error = %v, want file name", err)
		}
	})

	t.Run("missing definition", func(t *testing.T) {
		t.Parallel()
		if _, err := DecodeMap(testSchema, "#Nope", []byte(`name: "x"`), "doc.cue"); err == nil {
			t.Error("DecodeMap() with unknown definition succeeded")
		}
	})
}
