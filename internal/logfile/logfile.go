// SPDX-License-Identifier: MPL-2.0

// Package logfile extracts the loaded mod set from a game log
// (factorio-current.log). The game prints one "Checksum of <mod>: <n>" line
// per loaded mod in a contiguous block during startup.
package logfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fmm-go/fmm/pkg/modident"
)

// FileName is the log the game writes for the current session.
const FileName = "factorio-current.log"

const baseMod = "base"

var checksumLine = regexp.MustCompile(`Checksum of (.+): \d+\s*$`)

// Scan returns the mods listed in the first checksum block of r, in log
// order, excluding the base mod. Lines before the block are ignored; the
// first line after it ends the scan.
func Scan(r io.Reader) ([]modident.Ident, error) {
	var mods []modident.Ident
	inBlock := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := checksumLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			if inBlock {
				break
			}
			continue
		}
		inBlock = true
		if m[1] != baseMod {
			mods = append(mods, modident.New(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return mods, nil
}

// ScanFile runs Scan over the log at path.
func ScanFile(path string) ([]modident.Ident, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error is non-critical

	mods, err := Scan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mods, nil
}
