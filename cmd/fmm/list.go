// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fmm-go/fmm/internal/directory"
	"github.com/fmm-go/fmm/internal/modlist"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// listRow is one mod in 'fmm list' output.
type listRow struct {
	name     string
	versions []string
	state    string
}

func newListCommand(app *App) *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed mods, their versions and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := app.openDirectory(cmd.Context())
			if err != nil {
				return err
			}

			rows := listRows(d, enabledOnly)
			if len(rows) == 0 {
				msg := "(no mods installed)"
				if enabledOnly {
					msg = "(no mods enabled)"
				}
				fmt.Fprintln(app.stdout, SubtitleStyle.Render(msg))
				return nil
			}
			fmt.Fprintln(app.stdout, renderList(rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only list enabled mods")

	return cmd
}

// listRows collects every indexed mod plus manifest records whose mod is
// no longer installed. base ships with the game and is left out.
func listRows(d *directory.Directory, enabledOnly bool) []listRow {
	index, manifest := d.Index(), d.Manifest()

	var rows []listRow
	for _, name := range index.Names() {
		entries := index.Versions(name)
		versions := make([]string, 0, len(entries))
		for _, e := range entries {
			versions = append(versions, e.Version().String())
		}

		rec, ok := manifest.Get(name)
		if enabledOnly && (!ok || !rec.Enabled) {
			continue
		}
		rows = append(rows, listRow{name: name, versions: versions, state: recordState(rec, ok)})
	}

	for _, rec := range manifest.Records() {
		if rec.Name == modlist.BaseMod || index.Has(rec.Name) || (enabledOnly && !rec.Enabled) {
			continue
		}
		rows = append(rows, listRow{name: rec.Name, state: recordState(rec, true) + ", not installed"})
	}

	slices.SortFunc(rows, func(a, b listRow) int { return strings.Compare(a.name, b.name) })
	return rows
}

func recordState(rec modlist.Record, ok bool) string {
	switch {
	case !ok:
		return "unlisted"
	case !rec.Enabled:
		return "disabled"
	case rec.Version != nil:
		return "enabled (pinned " + rec.Version.String() + ")"
	default:
		return "enabled"
	}
}

func renderList(rows []listRow) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.name, strings.Join(r.versions, ", "), r.state})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers("Mod", "Versions", "State").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return CmdStyle.Padding(0, 1)
			case 1:
				return VerboseStyle.Padding(0, 1)
			}
			if row < len(data) && strings.HasPrefix(data[row][2], "enabled") {
				return SuccessStyle.Padding(0, 1)
			}
			return WarningStyle.Padding(0, 1)
		}).
		Render()
}
