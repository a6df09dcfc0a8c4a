// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home and config-dir variables at dir and
// returns a cleanup function restoring the originals.
//
// Platform handling:
//   - Windows: sets USERPROFILE and APPDATA
//   - Linux/macOS: sets HOME and XDG_CONFIG_HOME (dir/.config)
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		restoreProfile := MustSetenv(t, "USERPROFILE", dir)
		restoreAppData := MustSetenv(t, "APPDATA", dir)
		return func() {
			restoreAppData()
			restoreProfile()
		}
	default:
		restoreHome := MustSetenv(t, "HOME", dir)
		restoreXDG := MustSetenv(t, "XDG_CONFIG_HOME", dir+"/.config")
		return func() {
			restoreXDG()
			restoreHome()
		}
	}
}
