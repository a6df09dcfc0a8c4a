// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/fmm/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/fmm/config.cue on macOS, %APPDATA%\fmm\config.cue
// on Windows), or from the file named by --config. Every key is optional; FMM_*
// environment variables override file values. The file is validated against the
// embedded CUE schema (config_schema.cue).
package config
