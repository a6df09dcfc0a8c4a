// SPDX-License-Identifier: MPL-2.0

// Package proptree implements the game's PropertyTree: a tagged value tree
// (none, bool, number, string, list, dictionary) together with its binary
// encoding, as found in mod-settings.dat and at the tail of a save's level
// blob.
package proptree
