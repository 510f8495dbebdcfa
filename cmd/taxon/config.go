// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxon/taxon/internal/config"
)

// newConfigCommand creates the `taxon config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage taxon configuration",
		Long: `Manage taxon configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/taxon/config.cue (default ~/.config/taxon/config.cue)
  - macOS: ~/Library/Application Support/taxon/config.cue
  - Windows: %APPDATA%\taxon\config.cue

A config.cue in the working directory is used when none exists there.
TAXON_* environment variables override file values (TAXON_DATA_DIR,
TAXON_UI_VERBOSE, TAXON_SORT_OTHER_LAST).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	s, err := app.start(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}
	cfg := s.cfg
	w := cmd.OutOrStdout()

	source, err := app.Config.Source(app.loadOptions())
	if err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if source == "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), pathStyle.Render(source))
	}
	fmt.Fprintln(w)

	writeSetting(w, "", "data_dir", cfg.DataDir.String())
	writeSetting(w, "", "output_dir", cfg.OutputDir.String())
	writeSetting(w, "", "version", cfg.Version)
	writeSetting(w, "", "formats", strings.Join(cfg.FormatNames(), ", "))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("sort"))
	writeSetting(w, "  ", "other_last", fmt.Sprintf("%v", cfg.Sort.OtherLast))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("ui"))
	writeSetting(w, "  ", "color_scheme", cfg.UI.ColorScheme.String())
	writeSetting(w, "  ", "verbose", fmt.Sprintf("%v", cfg.UI.Verbose))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render("log"))
	writeSetting(w, "  ", "level", cfg.Log.Level.String())

	return nil
}

func writeSetting(w io.Writer, indent, key, value string) {
	fmt.Fprintf(w, "%s%s: %s\n", indent, CmdStyle.Render(key), SuccessStyle.Render(value))
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	w := cmd.OutOrStdout()

	source, err := app.Config.Source(app.loadOptions())
	if err != nil {
		return app.fail(cmd, err)
	}
	if source != "" {
		fmt.Fprintln(w, source)
		return nil
	}

	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return app.fail(cmd, err)
	}
	fmt.Fprintf(w, "%s %s\n", cfgPath, SubtitleStyle.Render("(not created; run 'taxon config init')"))
	return nil
}

func initConfig(cmd *cobra.Command, app *App) error {
	w := cmd.OutOrStdout()

	cfgPath, created, err := config.CreateDefaultConfig()
	if err != nil {
		return app.fail(cmd, err)
	}
	if !created {
		fmt.Fprintf(w, "%s Config file already exists: %s\n", infoIcon, pathStyle.Render(cfgPath))
		return nil
	}
	fmt.Fprintf(w, "%s Created config file: %s\n", successIcon, pathStyle.Render(cfgPath))
	return nil
}
