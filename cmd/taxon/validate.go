// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the taxonomy source data",
		Long: `Check the taxonomy source data.

Every source file is checked against the record schema, then values,
attributes and categories are built and the taxonomy rules are applied
(id format and depth, parent prefixes, unique keys, known references).
All problems are reported at once.

Exit status is 2 when the data is invalid and 1 for other failures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, app)
		},
	}
}

func runValidate(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	s, err := app.start(ctx)
	if err != nil {
		return app.fail(cmd, err)
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Taxonomy Validation"))
	fmt.Fprintf(stdout, "%s Data: %s\n", infoIcon, pathStyle.Render(s.cfg.DataDir.String()))
	fmt.Fprintln(stdout)

	tax, err := s.loadTaxonomy(ctx)
	if err != nil {
		fmt.Fprintf(stdout, "%s Validation failed\n", errorIcon)
		return app.fail(cmd, err)
	}

	fmt.Fprintf(stdout, "%s %d vertical(s), %d categories, %d attributes, %d values\n",
		successIcon,
		len(tax.Verticals()),
		tax.Categories.Size(),
		tax.Attributes.Size(),
		tax.Values.Size(),
	)
	fmt.Fprintf(stdout, "%s Taxonomy %s is valid\n", successIcon, tax.Version)
	return nil
}
