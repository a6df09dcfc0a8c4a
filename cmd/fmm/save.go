// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/fmm-go/fmm/internal/modlist"
	"github.com/fmm-go/fmm/internal/savefile"

	"github.com/spf13/cobra"
)

func newSaveCommand(app *App) *cobra.Command {
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Inspect save files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	saveCmd.AddCommand(&cobra.Command{
		Use:   "info <save.zip>",
		Short: "Show the game version, scenario and mods a save requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := savefile.Decode(args[0], savefile.WithLogger(app.logger))
			if err != nil {
				return asServiceError(err)
			}
			printSaveInfo(app.stdout, meta)
			return nil
		},
	})

	return saveCmd
}

func printSaveInfo(w io.Writer, meta *savefile.Metadata) {
	fmt.Fprintln(w, TitleStyle.Render(meta.Path))
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("game version"), meta.GameVersion)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("scenario"), meta.Scenario)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("scenario mod"), meta.ScenarioMod)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("level entry"), meta.LevelEntry)

	settings := "none"
	if meta.StartupSettings != nil {
		if d, ok := meta.StartupSettings.AsDictionary(); ok {
			settings = fmt.Sprintf("%d", d.Len())
		}
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("startup settings"), settings)

	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("mods"))
	for _, id := range meta.Mods {
		marker := "  - "
		if id.Name == modlist.BaseMod {
			marker = "  * "
		}
		fmt.Fprintln(w, marker+id.Name)
	}
}
