// SPDX-License-Identifier: MPL-2.0

// Package binio holds the little-endian primitives shared by the game's
// binary formats (save level blobs and property trees).
package binio

import (
	"encoding/binary"
	"errors"
	"io"
)

// spaceOptimizedMarker prefixes a space-optimized integer that did not fit
// in a single byte.
const spaceOptimizedMarker = 0xFF

// Fixed is the set of fixed-size values the formats are built from.
type Fixed interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Read decodes one little-endian value of type T.
// A partial value yields io.ErrUnexpectedEOF.
func Read[T Fixed](r io.Reader) (T, error) {
	var value T
	if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
		return 0, unexpected(err)
	}
	return value, nil
}

// Write encodes value in little-endian order.
func Write[T Fixed](w io.Writer, value T) error {
	return binary.Write(w, binary.LittleEndian, value)
}

// ReadBytes reads exactly n bytes.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, unexpected(err)
	}
	return buf, nil
}

// Skip discards exactly n bytes. Running out of input is an error.
func Skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r, n)
	if copied < n {
		if err == nil || errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ReadSpaceOptimized reads an integer stored in one byte when below 255,
// and as 0xFF followed by a u32 otherwise.
func ReadSpaceOptimized(r io.Reader) (uint32, error) {
	b, err := Read[uint8](r)
	if err != nil {
		return 0, err
	}
	if b != spaceOptimizedMarker {
		return uint32(b), nil
	}
	return Read[uint32](r)
}

// WriteSpaceOptimized is the inverse of ReadSpaceOptimized.
func WriteSpaceOptimized(w io.Writer, v uint32) error {
	if v < spaceOptimizedMarker {
		return Write(w, uint8(v))
	}
	if err := Write(w, uint8(spaceOptimizedMarker)); err != nil {
		return err
	}
	return Write(w, v)
}

// Any EOF inside a value means the input was cut short.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
