// SPDX-License-Identifier: MPL-2.0

package modident

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdent is the sentinel error wrapped by InvalidIdentError.
var ErrInvalidIdent = errors.New("invalid mod ident")

type (
	// Ident identifies a mod by name and an optional exact version.
	// A nil Version means "any version" when looking a mod up and
	// "latest available" when enabling it.
	Ident struct {
		Name    string
		Version *Version
	}

	// InvalidIdentError is returned when an ident string cannot be parsed.
	InvalidIdentError struct {
		Value string
		Cause error
	}
)

// Error implements the error interface.
func (e *InvalidIdentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid mod ident %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid mod ident %q", e.Value)
}

// Unwrap returns ErrInvalidIdent so callers can use errors.Is for programmatic detection.
func (e *InvalidIdentError) Unwrap() error { return ErrInvalidIdent }

// New returns an ident without a version.
func New(name string) Ident {
	return Ident{Name: name}
}

// WithVersion returns an ident pinned to v.
func WithVersion(name string, v Version) Ident {
	return Ident{Name: name, Version: &v}
}

// Parse parses "Name" or "Name@Version". Mod names may contain spaces,
// so only the last '@' separates the version.
func Parse(s string) (Ident, error) {
	name, version, found := cutLast(s, "@")
	if !found {
		if strings.TrimSpace(s) == "" {
			return Ident{}, &InvalidIdentError{Value: s}
		}
		return New(s), nil
	}
	if strings.TrimSpace(name) == "" {
		return Ident{}, &InvalidIdentError{Value: s}
	}
	v, err := ParseVersion(version)
	if err != nil {
		return Ident{}, &InvalidIdentError{Value: s, Cause: err}
	}
	return WithVersion(name, v), nil
}

// HasVersion reports whether the ident carries an exact version.
func (i Ident) HasVersion() bool {
	return i.Version != nil && !i.Version.IsZero()
}

// GuaranteedVersion returns the ident's version. Idents resolved against the
// mod index always carry one, so a missing version is a programming error
// and panics.
func (i Ident) GuaranteedVersion() Version {
	if !i.HasVersion() {
		panic(fmt.Sprintf("mod ident %q has no version", i.Name))
	}
	return *i.Version
}

// Compare orders idents by name, then by version. An ident without a
// version sorts before any versioned ident of the same name.
func (i Ident) Compare(other Ident) int {
	if c := strings.Compare(i.Name, other.Name); c != 0 {
		return c
	}
	return i.version().Compare(other.version())
}

// Equal reports whether both idents have the same name and version.
func (i Ident) Equal(other Ident) bool { return i.Compare(other) == 0 }

// String formats the ident as "Name" or "Name@Version".
func (i Ident) String() string {
	if !i.HasVersion() {
		return i.Name
	}
	return i.Name + "@" + i.Version.String()
}

func (i Ident) version() Version {
	if i.Version == nil {
		return Version{}
	}
	return *i.Version
}

func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
