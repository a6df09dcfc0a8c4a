// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fmm-go/fmm/internal/directory"
	"github.com/fmm-go/fmm/internal/issue"
	"github.com/fmm-go/fmm/internal/logfile"
	"github.com/fmm-go/fmm/internal/modindex"
	"github.com/fmm-go/fmm/internal/modlist"
	"github.com/fmm-go/fmm/internal/savefile"
	"github.com/fmm-go/fmm/pkg/modident"

	"github.com/spf13/cobra"
)

type (
	// syncFlags are the flags shared by every sync subcommand.
	syncFlags struct {
		disableAll bool
		ignoreDeps bool
		noDownload bool
	}

	// batchFunc applies operations to an opened directory and returns the
	// events they produced.
	batchFunc func(ctx context.Context, d *directory.Directory) ([]modlist.Event, error)
)

func newSyncCommand(app *App) *cobra.Command {
	flags := &syncFlags{}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Enable, disable or synchronize mods",
		Long: `Enable, disable or synchronize the mods of the mods directory.

Each invocation loads the mods directory once, applies --disable-all first,
then the requested operations, and writes mod-list.json once at the end.
Mods that are not installed are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.disableAll {
				return cmd.Help()
			}
			return app.runBatch(cmd.Context(), flags, nil)
		},
	}

	syncCmd.PersistentFlags().BoolVarP(&flags.disableAll, "disable-all", "o", false, "disable every mod except base before applying the operation")
	syncCmd.PersistentFlags().BoolVarP(&flags.ignoreDeps, "ignore-deps", "i", false, "do not resolve dependencies")
	syncCmd.PersistentFlags().BoolVarP(&flags.noDownload, "nodownload", "l", false, "do not download missing mods")

	syncCmd.AddCommand(newSyncEnableCommand(app, flags))
	syncCmd.AddCommand(newSyncEnableSetCommand(app, flags))
	syncCmd.AddCommand(newSyncDisableCommand(app, flags))
	syncCmd.AddCommand(newSyncSaveFileCommand(app, flags))

	return syncCmd
}

func newSyncEnableCommand(app *App, flags *syncFlags) *cobra.Command {
	var fromLog string

	cmd := &cobra.Command{
		Use:   "enable <mod>[@<version>]...",
		Short: "Enable mods, optionally pinned to a version",
		Example: `  fmm sync enable flib
  fmm sync enable Krastorio2@1.3.0 flib
  fmm sync -o enable --from-log ~/.factorio/factorio-current.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && fromLog == "" {
				return errors.New("requires at least one mod or --from-log")
			}

			ids, err := parseIdents(args)
			if err != nil {
				return err
			}
			if fromLog != "" {
				logged, err := logfile.ScanFile(fromLog)
				if err != nil {
					return err
				}
				app.logger.Debug("read mods from log", "path", fromLog, "mods", len(logged))
				ids = append(ids, logged...)
			}

			return app.runBatch(cmd.Context(), flags, func(_ context.Context, d *directory.Directory) ([]modlist.Event, error) {
				return enableAll(d, ids)
			})
		},
	}
	cmd.Flags().StringVar(&fromLog, "from-log", "", "also enable the mods listed in a "+logfile.FileName)

	return cmd
}

func newSyncEnableSetCommand(app *App, flags *syncFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "enable-set <set>",
		Short: "Enable every mod of a set defined in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := cfg.ModSet(args[0])
			if err != nil {
				return asServiceError(err)
			}

			return app.runBatch(cmd.Context(), flags, func(_ context.Context, d *directory.Directory) ([]modlist.Event, error) {
				return enableAll(d, ids)
			})
		},
	}
}

func newSyncDisableCommand(app *App, flags *syncFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <mod>[@<version>]...",
		Short: "Disable mods",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIdents(args)
			if err != nil {
				return err
			}

			return app.runBatch(cmd.Context(), flags, func(_ context.Context, d *directory.Directory) ([]modlist.Event, error) {
				events := make([]modlist.Event, 0, len(ids))
				for _, id := range ids {
					events = append(events, d.Disable(id))
				}
				return events, nil
			})
		},
	}
}

func newSyncSaveFileCommand(app *App, flags *syncFlags) *cobra.Command {
	var ignoreStartupSettings bool

	cmd := &cobra.Command{
		Use:   "save-file <save.zip>",
		Short: "Enable exactly the mods a save file requires",
		Long: `Disable every mod, then enable each mod the save requires. Mods that are
not installed are reported. Unless --ignore-startup-settings is set, the
startup settings stored in the save are merged into mod-settings.dat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			ignore := ignoreStartupSettings || cfg.Sync.IgnoreStartupSettings

			opts := []savefile.Option{savefile.WithLogger(app.logger)}
			if ignore {
				opts = append(opts, savefile.WithoutStartupSettings())
			}
			meta, err := savefile.Decode(args[0], opts...)
			if err != nil {
				return asServiceError(err)
			}
			app.logger.Debug("decoded save", "path", meta.Path, "version", meta.GameVersion, "mods", len(meta.Mods))

			return app.runBatch(cmd.Context(), flags, func(_ context.Context, d *directory.Directory) ([]modlist.Event, error) {
				return d.ApplySave(meta, ignore)
			})
		},
	}
	cmd.Flags().BoolVar(&ignoreStartupSettings, "ignore-startup-settings", false, "leave mod-settings.dat untouched")

	return cmd
}

// runBatch opens the mods directory, applies --disable-all and then op, and
// persists the manifest once. Nothing is written when op fails.
func (a *App) runBatch(ctx context.Context, flags *syncFlags, op batchFunc) error {
	d, cfg, err := a.openDirectory(ctx)
	if err != nil {
		return err
	}

	a.logger.Debug("sync",
		"dir", d.Path(),
		"disable-all", flags.disableAll,
		"ignore-deps", flags.ignoreDeps || cfg.Sync.IgnoreDeps,
		"nodownload", flags.noDownload || cfg.Sync.NoDownload)

	var events []modlist.Event
	if flags.disableAll {
		events = append(events, d.DisableAll())
	}

	var opErr error
	if op != nil {
		var opEvents []modlist.Event
		opEvents, opErr = op(ctx, d)
		events = append(events, opEvents...)
	}

	missing := printEvents(a.stdout, events)
	if opErr != nil {
		return asServiceError(opErr)
	}

	if err := d.Save(); err != nil {
		return asServiceError(err)
	}
	a.logger.Debug("saved manifest", "path", d.Manifest().Path())

	if missing > 0 {
		return &ExitError{
			Code: ExitModsMissing,
			Err:  newServiceError(fmt.Errorf("%d mod(s) could not be found", missing), issue.ModNotFoundId, ""),
		}
	}
	return nil
}

// enableAll enables each id, reporting and skipping mods that are not installed.
func enableAll(d *directory.Directory, ids []modident.Ident) ([]modlist.Event, error) {
	events := make([]modlist.Event, 0, len(ids))
	for _, id := range ids {
		ev, err := d.Enable(id)
		if err != nil && !errors.Is(err, modindex.ErrNotFound) {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseIdents parses 'name' or 'name@version' arguments.
func parseIdents(args []string) ([]modident.Ident, error) {
	ids := make([]modident.Ident, 0, len(args))
	for _, arg := range args {
		id, err := modident.Parse(arg)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse mod").
				WithResource(arg).
				WithSuggestion("Mods are written as 'name' or 'name@1.2.3'").
				Wrap(err).
				BuildError()
		}
		ids = append(ids, id)
	}
	return ids, nil
}
