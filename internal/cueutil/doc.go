// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE plumbing shared by configuration loading:
// compiling an embedded schema, unifying user data with one of its
// definitions, and turning CUE errors into path-prefixed messages.
package cueutil
