// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/fmm-go/fmm/internal/modlist"
)

// renderEvent formats one manifest event as a styled result line.
func renderEvent(ev modlist.Event) string {
	name := CmdStyle.Render(ev.Ident.Name)
	version := ""
	if ev.Version != nil {
		version = " " + VerboseStyle.Render("v"+ev.Version.String())
	}

	switch ev.Kind {
	case modlist.EventEnabled:
		return enabledStyle.Render("Enabled") + " " + name + version
	case modlist.EventAlreadyEnabled:
		return name + SubtitleStyle.Render(" is already enabled")
	case modlist.EventDisabled:
		return disabledStyle.Render("Disabled") + " " + CmdStyle.Render(ev.Ident.String())
	case modlist.EventDisabledAll:
		return disabledStyle.Render("Disabled") + " all mods"
	case modlist.EventNotFound:
		return notFoundStyle.Render("Could not find") + " " + CmdStyle.Render(ev.Ident.String())
	case modlist.EventAdded:
		return SuccessStyle.Render("Added") + " " + name + version
	default:
		return ev.String()
	}
}

// printEvents writes one line per event and returns how many were
// EventNotFound.
func printEvents(w io.Writer, events []modlist.Event) (missing int) {
	for _, ev := range events {
		if ev.Kind == modlist.EventNotFound {
			missing++
		}
		fmt.Fprintln(w, renderEvent(ev))
	}
	return missing
}
