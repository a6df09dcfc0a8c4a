// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/fmm-go/fmm/internal/config"
	"github.com/fmm-go/fmm/internal/directory"
	"github.com/fmm-go/fmm/internal/issue"
	"github.com/fmm-go/fmm/internal/modindex"
	"github.com/fmm-go/fmm/internal/modsettings"
	"github.com/fmm-go/fmm/internal/savefile"

	"github.com/charmbracelet/log"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Execute renders the styled message (if present) and the
// issue catalog entry after the command fails.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps domain errors to the issue that explains them.
// It returns 0 when no catalog entry applies.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, modindex.ErrNotFound):
		return issue.ModNotFoundId
	case errors.Is(err, savefile.ErrNoLevelDat):
		return issue.NoLevelDatId
	case errors.Is(err, savefile.ErrCampaignSave):
		return issue.CampaignSaveUnsupportedId
	case errors.Is(err, savefile.ErrMalformedSave):
		return issue.MalformedSaveId
	case errors.Is(err, modsettings.ErrSettingsShape), errors.Is(err, directory.ErrNoSettings):
		return issue.SettingsShapeId
	case errors.Is(err, config.ErrUnknownModSet):
		return issue.ModSetNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// asServiceError wraps err with its catalog entry unless it already is a
// ServiceError. A nil err stays nil.
func asServiceError(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return newServiceError(err, classifyError(err), "")
}

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, stylePath string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(stylePath)
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}
