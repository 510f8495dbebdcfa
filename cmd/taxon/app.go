// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taxon/taxon/internal/config"
	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/internal/loader"
	"github.com/taxon/taxon/pkg/natsort"
	"github.com/taxon/taxon/pkg/taxonomy"
	"github.com/taxon/taxon/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and reach
	// configuration, logging, and the loader through it.
	App struct {
		Config ConfigProvider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		flags  globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Source(opts config.LoadOptions) (string, error)
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configFile string
		dataDir    string
		verbose    bool
	}

	// session is the per-invocation state shared by a command's steps.
	session struct {
		cfg    *config.Config
		logger *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
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
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadOptions translates the --config flag into provider options.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.configFile)}
}

// start loads configuration, applies flag overrides, and builds the logger.
func (a *App) start(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}

	if a.flags.dataDir != "" {
		cfg.DataDir = types.FilesystemPath(a.flags.dataDir)
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}

	return &session{cfg: cfg, logger: a.newLogger(cfg)}, nil
}

// newLogger creates the stderr logger for one invocation. Verbose mode
// lowers the level to debug regardless of log.level.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level.String())
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadTaxonomy reads, builds, and validates the taxonomy under the
// configured data directory.
func (s *session) loadTaxonomy(ctx context.Context) (*taxonomy.Taxonomy, error) {
	dataDir := s.cfg.DataDir.String()
	l := loader.New(dataDir,
		loader.WithVersion(s.cfg.Version),
		loader.WithSorter(natsort.Default()),
		loader.WithLogger(s.logger),
	)

	tax, err := l.Load(ctx)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation(opLoadTaxonomy).
			WithResource(dataDir).
			WithSuggestion("Run 'taxon validate --verbose' to see every problem with its file and record").
			WithSuggestion("Point --data or data_dir at a directory holding values, attributes and categories/").
			Wrap(err).
			BuildError()
	}
	return tax, nil
}

// fail renders err with its catalog guidance to stderr and returns the
// ExitError that ends the process.
func (a *App) fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	verbose := a.flags.verbose
	stderr := cmd.ErrOrStderr()

	id, code := classifyError(err)
	fmt.Fprint(stderr, styledError(err, verbose))

	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(a.colorScheme(cmd.Context()))
		if renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
	}

	return &ExitError{Code: code}
}

// colorScheme returns the glamour style for rendered markdown, falling back
// to auto detection when configuration cannot be read.
func (a *App) colorScheme(ctx context.Context) string {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return config.ColorSchemeAuto.String()
	}
	return cfg.UI.ColorScheme.String()
}
