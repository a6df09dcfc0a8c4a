// SPDX-License-Identifier: MPL-2.0

// Package savefile decodes the metadata at the head of a save archive's
// level-state blob: the game version, the scenario and its owning mod, the
// mods the save was made with, and the startup settings they ran under.
//
// The blob is read from the first archive member whose name contains
// "level.dat0" (zlib-compressed) or, failing that, "level.dat" (raw). At most
// MaxLevelSize bytes of it are ever held in memory.
package savefile
