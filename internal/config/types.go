// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fmm-go/fmm/pkg/modident"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultModsDir is used when neither mods_dir nor game_dir is configured.
	DefaultModsDir = "mods"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidModSet is the sentinel error wrapped by InvalidModSetError.
	ErrInvalidModSet = errors.New("invalid mod set")
	// ErrUnknownModSet is returned when a requested set is not configured.
	ErrUnknownModSet = errors.New("unknown mod set")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidModSetError reports a set entry that is not a mod identifier.
	InvalidModSetError struct {
		Set   string
		Entry string
		Cause error
	}

	// UnknownModSetError names the missing set and the configured ones.
	UnknownModSetError struct {
		Name      string
		Available []string
	}

	// InvalidConfigError aggregates field validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the resolved application configuration.
	Config struct {
		// GameDir is the game installation directory.
		GameDir string `json:"game_dir" mapstructure:"game_dir"`
		// ModsDir overrides the mods directory location.
		ModsDir string `json:"mods_dir" mapstructure:"mods_dir"`
		// Sets maps a set name to mod identifiers ("Name" or "Name@1.2.3").
		// Viper lowercases keys, so set names are case-insensitive.
		Sets map[string][]string `json:"sets" mapstructure:"sets"`
		// Sync holds defaults for the sync command's flags.
		Sync SyncConfig `json:"sync" mapstructure:"sync"`
		// UI configures output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// SyncConfig holds defaults for 'fmm sync'.
	SyncConfig struct {
		IgnoreDeps            bool `json:"ignore_deps" mapstructure:"ignore_deps"`
		NoDownload            bool `json:"no_download" mapstructure:"no_download"`
		IgnoreStartupSettings bool `json:"ignore_startup_settings" mapstructure:"ignore_startup_settings"`
	}

	// UIConfig configures output.
	UIConfig struct {
		// ColorScheme sets the color scheme (auto, dark, light).
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sets: map[string][]string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// ResolveModsDir returns the mods directory: ModsDir when set, otherwise
// GameDir/mods, otherwise ./mods.
func (c *Config) ResolveModsDir() string {
	switch {
	case c.ModsDir != "":
		return c.ModsDir
	case c.GameDir != "":
		return filepath.Join(c.GameDir, DefaultModsDir)
	default:
		return DefaultModsDir
	}
}

// SetNames returns the configured mod set names in sorted order.
func (c *Config) SetNames() []string {
	names := make([]string, 0, len(c.Sets))
	for name := range c.Sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ModSet parses the identifiers of the named set.
func (c *Config) ModSet(name string) ([]modident.Ident, error) {
	entries, ok := c.Sets[name]
	if !ok {
		entries, ok = c.Sets[strings.ToLower(name)]
	}
	if !ok {
		return nil, &UnknownModSetError{Name: name, Available: c.SetNames()}
	}
	ids := make([]modident.Ident, 0, len(entries))
	for _, entry := range entries {
		id, err := modident.Parse(entry)
		if err != nil {
			return nil, &InvalidModSetError{Set: name, Entry: entry, Cause: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IsValid returns whether the Config has valid fields.
// It checks the color scheme and that every set entry parses as a mod identifier.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, name := range c.SetNames() {
		if _, err := c.ModSet(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	return c.ColorScheme.IsValid()
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidModSetError.
func (e *InvalidModSetError) Error() string {
	return fmt.Sprintf("set %q: entry %q: %v", e.Set, e.Entry, e.Cause)
}

// Unwrap returns ErrInvalidModSet for errors.Is() compatibility.
func (e *InvalidModSetError) Unwrap() error { return ErrInvalidModSet }

// Error implements the error interface for UnknownModSetError.
func (e *UnknownModSetError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown mod set %q (no sets configured)", e.Name)
	}
	return fmt.Sprintf("unknown mod set %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrUnknownModSet for errors.Is() compatibility.
func (e *UnknownModSetError) Unwrap() error { return ErrUnknownModSet }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}
