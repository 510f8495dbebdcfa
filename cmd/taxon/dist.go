// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxon/taxon/internal/dist"
	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/internal/watch"
)

type distFlags struct {
	formats []string
	outDir  string
	watch   bool
}

func newDistCommand(app *App) *cobra.Command {
	var flags distFlags

	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Write distribution files",
		Long: `Write distribution files.

Formats:
  json  categories.json, attributes.json
  txt   categories.txt, attributes.txt, attribute_values.txt
  md    docs/<vertical>.md

Formats default to the configured list; files are written to output_dir
unless --out is given. With --watch the files are rebuilt whenever a
source file under the data directory changes, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDist(cmd, app, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.formats, "format", "f", nil, "formats to write (json, txt, md)")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild when source files change")

	return cmd
}

func runDist(cmd *cobra.Command, app *App, flags distFlags) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	s, err := app.start(ctx)
	if err != nil {
		return app.fail(cmd, err)
	}

	names := flags.formats
	if len(names) == 0 {
		names = s.cfg.FormatNames()
	}
	formats, err := dist.ParseFormats(names)
	if err != nil {
		return app.fail(cmd, err)
	}

	outDir := flags.outDir
	if outDir == "" {
		outDir = s.cfg.OutputDir.String()
	}

	build := func(ctx context.Context) error {
		return writeDist(ctx, stdout, s, outDir, formats)
	}

	if !flags.watch {
		if err := build(ctx); err != nil {
			return app.fail(cmd, err)
		}
		return nil
	}
	return watchDist(cmd, app, s, outDir, build)
}

// writeDist loads the taxonomy and writes every requested format to outDir.
func writeDist(ctx context.Context, stdout io.Writer, s *session, outDir string, formats []dist.Format) error {
	tax, err := s.loadTaxonomy(ctx)
	if err != nil {
		return err
	}

	written, err := dist.NewWriter(outDir, s.logger).WriteAll(ctx, tax, formats)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation(opWriteDist).
			WithResource(outDir).
			WithSuggestion("Check that the output directory is writable").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Distribution"))
	for _, path := range written {
		rel, relErr := filepath.Rel(outDir, path)
		if relErr != nil {
			rel = path
		}
		fmt.Fprintf(stdout, "%s %s\n", successIcon, pathStyle.Render(filepath.ToSlash(rel)))
	}
	fmt.Fprintf(stdout, "%s %d file(s) written to %s\n", infoIcon, len(written), outDir)
	return nil
}

// watchDist builds once, then rebuilds on every source change until the
// context is canceled. Build failures are reported and watching continues.
func watchDist(cmd *cobra.Command, app *App, s *session, outDir string, build func(context.Context) error) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()
	report := func(err error) {
		fmt.Fprint(stderr, styledError(err, app.flags.verbose))
	}

	if err := build(ctx); err != nil {
		report(err)
	}

	dataDir := s.cfg.DataDir.String()
	var ignore []string
	if rel, err := filepath.Rel(dataDir, outDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		ignore = append(ignore, filepath.ToSlash(rel)+"/**")
	}

	w, err := watch.New(watch.Config{
		Dir:    dataDir,
		Ignore: ignore,
		Logger: s.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			s.logger.Info("sources changed", "files", changed)
			if err := build(ctx); err != nil {
				report(err)
			}
			return nil
		},
	})
	if err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintf(stderr, "%s Watching %s (Ctrl+C to stop)\n", infoIcon, pathStyle.Render(dataDir))
	if err := w.Run(ctx); err != nil {
		return app.fail(cmd, err)
	}
	return nil
}
