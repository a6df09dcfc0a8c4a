// SPDX-License-Identifier: MPL-2.0

package modident

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

type (
	// Version is a strict semantic version with exactly three numeric
	// components and an optional prerelease suffix (e.g., "1.1.87", "2.0.0-rc.1").
	// The zero value is not a valid version; use IsZero to detect it.
	Version struct {
		// canonical holds the golang.org/x/mod/semver form ("v1.1.87").
		canonical string
	}

	// InvalidVersionError is returned when a string is not a strict semantic version.
	// It wraps ErrInvalidVersion for errors.Is() compatibility.
	InvalidVersionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q (expected MAJOR.MINOR.PATCH)", e.Value)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is for programmatic detection.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }

// ParseVersion parses s strictly. Shorthand forms accepted by semver tooling
// ("1.2", "v1.2.3") and build metadata ("1.2.3+abc") are rejected.
func ParseVersion(s string) (Version, error) {
	if s == "" || strings.HasPrefix(s, "v") {
		return Version{}, &InvalidVersionError{Value: s}
	}
	v := "v" + s
	if !semver.IsValid(v) || semver.Canonical(v) != v {
		return Version{}, &InvalidVersionError{Value: s}
	}
	return Version{canonical: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
// It is intended for constants in tests and fixtures.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// NewVersion builds a version from its numeric components.
func NewVersion(major, minor, patch uint64) Version {
	return Version{canonical: fmt.Sprintf("v%d.%d.%d", major, minor, patch)}
}

// IsZero reports whether v is the zero (unset) version.
func (v Version) IsZero() bool { return v.canonical == "" }

// String returns the version without the "v" prefix, e.g. "1.1.87".
func (v Version) String() string {
	return strings.TrimPrefix(v.canonical, "v")
}

// Compare returns -1, 0 or +1 depending on whether v is lower than, equal to
// or higher than other. The zero version sorts before every valid version.
func (v Version) Compare(other Version) int {
	switch {
	case v.IsZero() && other.IsZero():
		return 0
	case v.IsZero():
		return -1
	case other.IsZero():
		return 1
	}
	return semver.Compare(v.canonical, other.canonical)
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with strict parsing.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
