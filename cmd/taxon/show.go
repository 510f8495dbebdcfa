// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/taxon/taxon/internal/dist"
	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/pkg/taxonomy"
)

// renderMarkdown is replaceable in tests.
var renderMarkdown = glamour.Render

func newShowCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <category-id>",
		Short: "Show one category",
		Long: `Show one category with its path, children and attributes.

The page is rendered as markdown in the configured color scheme
(ui.color_scheme); --raw prints the markdown source instead.`,
		Example: "  taxon show aa-1\n  taxon show aa-1 --raw > aa-1.md",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, args[0], raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")

	return cmd
}

func runShow(cmd *cobra.Command, app *App, id string, raw bool) error {
	ctx := cmd.Context()

	s, err := app.start(ctx)
	if err != nil {
		return app.fail(cmd, err)
	}

	tax, err := s.loadTaxonomy(ctx)
	if err != nil {
		return app.fail(cmd, err)
	}

	category, err := tax.Categories.MustFind(taxonomy.FieldID, id)
	if err != nil {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation(opFindCategory).
			WithResource(id).
			WithSuggestion("Category ids look like aa-1-2: a two-letter vertical prefix and one number per level").
			WithSuggestion("Run 'taxon dist --format txt' and search categories.txt for the category name").
			Wrap(err).
			BuildError())
	}

	var md strings.Builder
	if err := dist.WriteCategoryMarkdown(&md, tax, category); err != nil {
		return app.fail(cmd, err)
	}

	out := md.String()
	if !raw {
		out, err = renderMarkdown(out, s.cfg.UI.ColorScheme.String())
		if err != nil {
			return app.fail(cmd, fmt.Errorf("render category %s: %w", id, err))
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
