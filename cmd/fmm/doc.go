// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fmm.
//
// Every command handler receives an App, which loads configuration once per
// invocation and opens the mods directory. Mutating commands under 'sync'
// apply their operations to one in-memory Directory and persist
// mod-list.json once at the end.
package cmd
