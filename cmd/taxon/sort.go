// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/pkg/natsort"
)

func newSortCommand(app *App) *cobra.Command {
	var otherLast bool

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Natural-sort lines read from stdin",
		Long: `Natural-sort lines read from stdin.

Numbers, fractions, ranges and measurements order by value ("2" before
"10", "1/2" before "1"), and text orders case- and accent-insensitively.
Blank lines are dropped. "Other" is pinned last unless disabled with
--other-last=false or sort.other_last in the configuration.`,
		Example: "  printf '10\\n2\\nOther\\n1/2\\n' | taxon sort",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSort(cmd, app, otherLast)
		},
	}

	cmd.Flags().BoolVar(&otherLast, "other-last", true, "pin \"Other\" after every other label")

	return cmd
}

func runSort(cmd *cobra.Command, app *App, otherLast bool) error {
	s, err := app.start(cmd.Context())
	if err != nil {
		return app.fail(cmd, err)
	}
	if !cmd.Flags().Changed("other-last") {
		otherLast = s.cfg.Sort.OtherLast
	}

	var labels []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return app.fail(cmd, fmt.Errorf("read stdin: %w", err))
	}
	s.logger.Debug("sorting labels", "count", len(labels), "other_last", otherLast)

	var opts []natsort.Option
	if otherLast {
		opts = append(opts, natsort.WithOtherLast())
	}
	sorted, err := natsort.Strings(labels, opts...)
	if err != nil {
		return app.fail(cmd, issue.NewErrorContext().
			WithOperation(opSortLabels).
			WithResource("stdin").
			WithSuggestion("Fix or remove the label named in the error").
			Wrap(err).
			BuildError())
	}

	stdout := cmd.OutOrStdout()
	for _, label := range sorted {
		fmt.Fprintln(stdout, label)
	}
	return nil
}
