// SPDX-License-Identifier: MPL-2.0

package savefile

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLevelDat is returned when the archive has no level-state member.
	ErrNoLevelDat = errors.New("save has no level.dat")

	// ErrMalformedSave is returned when the level-state blob cannot be parsed.
	ErrMalformedSave = errors.New("malformed save file")

	// ErrCampaignSave is returned for saves that belong to a campaign.
	// Their header layout is not supported.
	ErrCampaignSave = errors.New("campaign saves are not supported")
)

type (
	// MalformedError names the header field that could not be read.
	MalformedError struct {
		Field string
		Err   error
	}

	// CampaignError carries the campaign name found in the header.
	CampaignError struct {
		Campaign string
	}
)

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: reading %s: %v", ErrMalformedSave, e.Field, e.Err)
}

func (e *MalformedError) Unwrap() []error { return []error{ErrMalformedSave, e.Err} }

func (e *CampaignError) Error() string {
	return fmt.Sprintf("%s (campaign %q)", ErrCampaignSave, e.Campaign)
}

func (e *CampaignError) Unwrap() error { return ErrCampaignSave }
