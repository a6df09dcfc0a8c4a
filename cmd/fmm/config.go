// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fmm-go/fmm/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `fmm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fmm configuration",
		Long: `Manage fmm configuration.

Configuration is stored in:
  - Linux: ~/.config/fmm/config.cue
  - macOS: ~/Library/Application Support/fmm/config.cue
  - Windows: %APPDATA%\fmm\config.cue

Every key can be overridden with an FMM_<KEY> environment variable,
for example FMM_MODS_DIR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if app.loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), app.loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("game_dir"), valueOrUnset(cfg.GameDir))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("mods_dir"), valueOrUnset(cfg.ModsDir))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("resolved mods directory"), valueStyle.Render(cfg.ResolveModsDir()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("sets"))
	names := cfg.SetNames()
	if len(names) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, valueStyle.Render(strings.Join(cfg.Sets[name], ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("sync"))
	fmt.Fprintf(w, "  ignore_deps: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Sync.IgnoreDeps)))
	fmt.Fprintf(w, "  no_download: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Sync.NoDownload)))
	fmt.Fprintf(w, "  ignore_startup_settings: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Sync.IgnoreStartupSettings)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(unset)")
	}
	return SuccessStyle.Render(v)
}

func initConfig(app *App) error {
	path := app.flags.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	if app.flags.configPath != "" {
		path = app.flags.configPath
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
