// SPDX-License-Identifier: MPL-2.0

// Package modlist manages mod-list.json, the manifest of enabled mods.
//
// The manifest is an insertion-ordered list of records, one per mod name. Every
// record, including those of mods that are no longer installed, is written back
// verbatim so that user ordering survives a round trip.
//
// Mutations do not print anything; each returns an [Event] describing what
// happened so the caller can decide how to present it.
package modlist
