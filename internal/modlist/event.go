// SPDX-License-Identifier: MPL-2.0

package modlist

import (
	"fmt"

	"github.com/fmm-go/fmm/pkg/modident"
)

const (
	// EventEnabled reports a mod switched on. Version holds the resolved version.
	EventEnabled EventKind = iota + 1
	// EventAlreadyEnabled reports an enable request for a mod that was already on.
	EventAlreadyEnabled
	// EventDisabled reports a mod switched off.
	EventDisabled
	// EventDisabledAll reports that every non-base mod was switched off.
	EventDisabledAll
	// EventNotFound reports a request naming a mod absent from the index.
	EventNotFound
	// EventAdded reports a new package registered as disabled.
	EventAdded
)

type (
	// EventKind classifies manifest events.
	EventKind int

	// Event describes the outcome of one manifest operation.
	Event struct {
		Kind EventKind
		// Ident is the identifier the operation was asked about.
		Ident modident.Ident
		// Version is the resolved package version for EventEnabled and EventAdded.
		Version *modident.Version
	}
)

// String returns a plain-text description of the event.
func (e Event) String() string {
	switch e.Kind {
	case EventEnabled:
		if e.Version != nil {
			return fmt.Sprintf("Enabled %s v%s", e.Ident.Name, e.Version)
		}
		return "Enabled " + e.Ident.Name
	case EventAlreadyEnabled:
		return fmt.Sprintf("%s is already enabled", e.Ident.Name)
	case EventDisabled:
		return "Disabled " + e.Ident.String()
	case EventDisabledAll:
		return "Disabled all mods"
	case EventNotFound:
		return "Could not find " + e.Ident.String()
	case EventAdded:
		if e.Version != nil {
			return fmt.Sprintf("Added %s v%s", e.Ident.Name, e.Version)
		}
		return "Added " + e.Ident.Name
	default:
		return fmt.Sprintf("EventKind(%d) %s", int(e.Kind), e.Ident)
	}
}
