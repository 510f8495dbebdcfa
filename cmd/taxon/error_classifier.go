// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/taxon/taxon/internal/config"
	"github.com/taxon/taxon/internal/dag"
	"github.com/taxon/taxon/internal/dist"
	"github.com/taxon/taxon/internal/issue"
	"github.com/taxon/taxon/internal/loader"
	"github.com/taxon/taxon/pkg/cueutil"
	"github.com/taxon/taxon/pkg/index"
	"github.com/taxon/taxon/pkg/natsort"
	"github.com/taxon/taxon/pkg/taxonomy"
	"github.com/taxon/taxon/pkg/types"
)

const (
	opLoadConfig     = "load configuration"
	opValidateConfig = "validate configuration"
	opLoadTaxonomy   = "load taxonomy"
	opFindCategory   = "find category"
	opWriteDist      = "write distribution files"
	opSortLabels     = "sort labels"
)

// classifyError maps a failure to an issue catalog entry and the exit code
// the process should end with. Data problems exit with ExitValidation;
// everything else is an operational failure.
func classifyError(err error) (issue.ID, types.ExitCode) {
	var (
		ae       *issue.ActionableError
		schema   *cueutil.ValidationError
		cycle    *dag.CycleError
		validity *taxonomy.ValidationError
	)
	isConfig := errors.As(err, &ae) && (ae.Operation == opLoadConfig || ae.Operation == opValidateConfig)

	switch {
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedID, types.ExitFailure
	case isConfig:
		return issue.ConfigLoadFailedID, types.ExitFailure
	case errors.Is(err, dist.ErrInvalidFormat), errors.Is(err, config.ErrInvalidOutputFormat):
		return issue.InvalidFormatID, types.ExitFailure
	case errors.Is(err, loader.ErrSourceNotFound):
		return issue.DataDirNotFoundID, types.ExitFailure
	case ae != nil && ae.Operation == opFindCategory && errors.Is(err, index.ErrNotFound):
		return issue.CategoryNotFoundID, types.ExitFailure
	case errors.As(err, &schema), errors.Is(err, loader.ErrAmbiguousSource):
		return issue.SourceSchemaErrorID, types.ExitValidation
	case errors.Is(err, index.ErrDuplicateKey):
		return issue.DuplicateKeyID, types.ExitValidation
	case errors.As(err, &cycle), errors.Is(err, taxonomy.ErrCycleDetected), errors.Is(err, loader.ErrMultipleParents):
		return issue.DependencyCycleID, types.ExitValidation
	case errors.Is(err, index.ErrNotFound):
		return issue.UnknownReferenceID, types.ExitValidation
	case errors.Is(err, natsort.ErrMalformed):
		return issue.MalformedLabelID, types.ExitValidation
	case errors.As(err, &validity):
		return issue.InvalidTaxonomyID, types.ExitValidation
	default:
		return 0, types.ExitFailure
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// styledError returns the styled "Error:" block printed for a failure.
func styledError(err error, verbose bool) string {
	return fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}
