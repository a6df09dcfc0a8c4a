// SPDX-License-Identifier: MPL-2.0

// fmm manages the mods of a Factorio installation.
package main

import cmd "github.com/fmm-go/fmm/cmd/fmm"

func main() {
	cmd.Execute()
}
