// SPDX-License-Identifier: MPL-2.0

package binio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestRead(t *testing.T) {
	r := bytes.NewReader([]byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0xFF})

	u16, err := Read[uint16](r)
	if err != nil || u16 != 1 {
		t.Fatalf("Read[uint16]() = %d, %v", u16, err)
	}
	u32, err := Read[uint32](r)
	if err != nil || u32 != 2 {
		t.Fatalf("Read[uint32]() = %d, %v", u32, err)
	}
	if _, err := Read[uint16](r); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read[uint16]() on 1 byte error = %v, want ErrUnexpectedEOF", err)
	}
	if _, err := Read[uint8](r); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read[uint8]() on empty input error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestSkip(t *testing.T) {
	r := bytes.NewReader(make([]byte, 10))
	if err := Skip(r, 7); err != nil {
		t.Fatalf("Skip(7) failed: %v", err)
	}
	if err := Skip(r, 0); err != nil {
		t.Fatalf("Skip(0) failed: %v", err)
	}
	if err := Skip(r, 4); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Skip past end error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReadBytes(t *testing.T) {
	r := bytes.NewReader([]byte("abc"))
	got, err := ReadBytes(r, 2)
	if err != nil || string(got) != "ab" {
		t.Fatalf("ReadBytes(2) = %q, %v", got, err)
	}
	if _, err := ReadBytes(r, 2); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadBytes past end error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestSpaceOptimized(t *testing.T) {
	tests := []struct {
		value   uint32
		encoded []byte
	}{
		{0, []byte{0x00}},
		{254, []byte{0xFE}},
		{255, []byte{0xFF, 0xFF, 0x00, 0x00, 0x00}},
		{70000, []byte{0xFF, 0x70, 0x11, 0x01, 0x00}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteSpaceOptimized(&buf, tt.value); err != nil {
			t.Fatalf("WriteSpaceOptimized(%d) failed: %v", tt.value, err)
		}
		if !bytes.Equal(buf.Bytes(), tt.encoded) {
			t.Errorf("WriteSpaceOptimized(%d) = % x, want % x", tt.value, buf.Bytes(), tt.encoded)
		}
		got, err := ReadSpaceOptimized(bytes.NewReader(tt.encoded))
		if err != nil || got != tt.value {
			t.Errorf("ReadSpaceOptimized(% x) = %d, %v, want %d", tt.encoded, got, err, tt.value)
		}
	}
}
