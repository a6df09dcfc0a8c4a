// SPDX-License-Identifier: MPL-2.0

// Package modindex builds the authoritative index of mods installed in a mods directory.
//
// Every entry of the directory is classified as a plain directory, a symlink or a
// zip archive. Its identity is taken from the file name when it follows the
// "<Name>_<MAJOR>.<MINOR>.<PATCH>[.zip]" convention, and from the embedded
// info.json document otherwise. Entries that yield no identity are skipped.
//
// The index maps each mod name to its packages sorted ascending by version.
// Index entries are plain values (path + identity); no file handle is kept open.
package modindex
