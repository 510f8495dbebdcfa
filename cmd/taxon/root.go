// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

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

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taxon",
		Short: "Build and publish a product taxonomy",
		Long: TitleStyle.Render("taxon") + SubtitleStyle.Render(" - Build and publish a product taxonomy") + `

taxon reads category trees, attributes and attribute values from YAML or
TOML source files, checks them against a schema and the taxonomy rules,
and writes distribution files in JSON, text and markdown.

` + SubtitleStyle.Render("Examples:") + `
  taxon validate                   Check the source data
  taxon dist --format json         Write categories.json and attributes.json
  taxon dist --watch               Rebuild whenever a source file changes
  taxon show aa-1                  Show one category
  taxon sort < sizes.txt           Natural-sort lines from stdin
  taxon config show                Show current configuration`,
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/taxon/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.dataDir, "data", "", "taxonomy source directory (overrides data_dir)")

	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newDistCommand(app))
	rootCmd.AddCommand(newShowCommand(app))
	rootCmd.AddCommand(newSortCommand(app))
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

// Execute builds the App and runs the root command.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// errorHandler skips failures the command already rendered and defers
// everything else (usage errors, unknown flags) to fang.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
