// SPDX-License-Identifier: MPL-2.0

// Package issue holds the user-facing side of fmm's errors: ActionableError,
// which carries hints printed under the error line, and a catalog of Markdown
// pages (missing mods directory, campaign saves, unreadable settings and so
// on) rendered with glamour when a command fails for a known reason.
package issue
