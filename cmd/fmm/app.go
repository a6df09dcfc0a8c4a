// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fmm-go/fmm/internal/config"
	"github.com/fmm-go/fmm/internal/directory"
	"github.com/fmm-go/fmm/internal/issue"
	"github.com/fmm-go/fmm/internal/modlist"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger

		flags      rootFlags
		issueStyle string

		loaded  *config.Loaded
		loadErr error
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlags are the persistent flags shared by every command.
	rootFlags struct {
		configPath string
		gameDir    string
		modsDir    string
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.InfoLevel,
		}),
		issueStyle: "auto",
	}
}

// setup runs before every command: it loads configuration and applies the
// logging and color settings. A configuration error is kept for the
// commands that need the configuration.
func (a *App) setup(ctx context.Context) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		if a.flags.verbose {
			a.logger.SetLevel(log.DebugLevel)
		}
		return
	}

	if a.flags.verbose || cfg.UI.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	a.issueStyle = applyColorScheme(cfg.UI.ColorScheme)
}

// loadConfig loads configuration once per invocation and applies the
// --game-dir and --mods-dir overrides.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	if a.loaded == nil && a.loadErr == nil {
		a.loaded, a.loadErr = a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
		if a.loadErr == nil {
			a.logger.Debug("loaded configuration", "path", a.loaded.Path)
		}
	}
	if a.loadErr != nil {
		return nil, newServiceError(a.loadErr, issue.ConfigLoadFailedId, "")
	}

	cfg := *a.loaded.Config
	if a.flags.gameDir != "" {
		cfg.GameDir = a.flags.gameDir
	}
	if a.flags.modsDir != "" {
		cfg.ModsDir = a.flags.modsDir
	}
	return &cfg, nil
}

// openDirectory resolves the mods directory from configuration and opens it.
func (a *App) openDirectory(ctx context.Context) (*directory.Directory, *config.Config, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	dir := cfg.ResolveModsDir()
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", dir)
	}
	if err != nil {
		return nil, nil, newServiceError(
			issue.NewErrorContext().
				WithOperation("open mods directory").
				WithResource(dir).
				WithSuggestion("Pass --mods-dir or --game-dir, or set mods_dir in the config file").
				Wrap(err).
				BuildError(),
			issue.ModsDirNotFoundId, "")
	}

	d, err := directory.Open(dir, directory.WithLogger(a.logger))
	if err != nil {
		id := classifyError(err)
		if modlist.IsNotExist(err) {
			id = issue.ModListNotFoundId
		}
		return nil, nil, newServiceError(fmt.Errorf("failed to open mods directory %s: %w", dir, err), id, "")
	}
	return d, cfg, nil
}
