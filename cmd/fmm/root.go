// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fmm-go/fmm/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the fmm command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fmm",
		Short: "Manage the mods of a Factorio installation",
		Long: TitleStyle.Render("fmm") + SubtitleStyle.Render(" - Factorio mod manager") + `

fmm enables and disables the mods in a mods directory by editing its
mod-list.json, and can make the enabled set match the mods a save file
was played with.

` + SubtitleStyle.Render("Examples:") + `
  fmm list                              Show installed mods and their state
  fmm sync enable flib Krastorio2@1.3.0 Enable mods (latest or pinned)
  fmm sync -o save-file my-base.zip     Match the mods of a save
  fmm sync enable-set space             Enable a mod set from the config
  fmm save info my-base.zip             Show what a save requires`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setup(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fmm/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.gameDir, "game-dir", "", "game installation directory (mods are read from <game-dir>/mods)")
	rootCmd.PersistentFlags().StringVar(&app.flags.modsDir, "mods-dir", "", "mods directory (overrides --game-dir)")

	rootCmd.AddCommand(newSyncCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newSaveCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version is passed explicitly
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		app.reportError(err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// reportError prints what fang's error line leaves out: the suggestions of
// an ActionableError (and its chain in verbose mode) and the issue catalog
// entry of a ServiceError.
func (a *App) reportError(err error) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && (a.flags.verbose || ae.HasSuggestions()) {
		fmt.Fprintln(a.stderr, formatErrorForDisplay(err, a.flags.verbose))
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(a.stderr, svcErr, a.issueStyle)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
