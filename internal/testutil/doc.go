// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, SetHomeDir),
// file creation (MustWriteFile, MustMkdirAll) and fixture builders for mods
// directories and save archives (WriteZipMod, WriteDirMod, EncodeLevel,
// WriteSaveArchive).
package testutil
