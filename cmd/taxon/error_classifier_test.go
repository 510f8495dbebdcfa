// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

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

func wrapOp(op string, err error) error {
	return issue.NewErrorContext().WithOperation(op).Wrap(err).BuildError()
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantID   issue.ID
		wantCode types.ExitCode
	}{
		{"permission", fmt.Errorf("open values.yml: %w", os.ErrPermission), issue.PermissionDeniedID, types.ExitFailure},
		{"config load", wrapOp(opLoadConfig, errors.New("bad cue")), issue.ConfigLoadFailedID, types.ExitFailure},
		{"config validate", wrapOp(opValidateConfig, config.ErrInvalidLogLevel), issue.ConfigLoadFailedID, types.ExitFailure},
		{"dist format", fmt.Errorf("%w: pdf", dist.ErrInvalidFormat), issue.InvalidFormatID, types.ExitFailure},
		{"missing source", wrapOp(opLoadTaxonomy, &loader.SourceError{Path: "data/values.yml", Err: loader.ErrSourceNotFound}), issue.DataDirNotFoundID, types.ExitFailure},
		{"unknown category", wrapOp(opFindCategory, fmt.Errorf("%w: zz", index.ErrNotFound)), issue.CategoryNotFoundID, types.ExitFailure},
		{"schema", wrapOp(opLoadTaxonomy, &cueutil.ValidationError{FilePath: "values.yml"}), issue.SourceSchemaErrorID, types.ExitValidation},
		{"ambiguous source", loader.ErrAmbiguousSource, issue.SourceSchemaErrorID, types.ExitValidation},
		{"duplicate", wrapOp(opLoadTaxonomy, fmt.Errorf("%w: aa", index.ErrDuplicateKey)), issue.DuplicateKeyID, types.ExitValidation},
		{"extended cycle", &dag.CycleError{Cycle: []string{"a", "b"}}, issue.DependencyCycleID, types.ExitValidation},
		{"category cycle", taxonomy.ErrCycleDetected, issue.DependencyCycleID, types.ExitValidation},
		{"two parents", loader.ErrMultipleParents, issue.DependencyCycleID, types.ExitValidation},
		{"unknown reference", wrapOp(opLoadTaxonomy, fmt.Errorf("%w: color", index.ErrNotFound)), issue.UnknownReferenceID, types.ExitValidation},
		{"malformed label", wrapOp(opSortLabels, fmt.Errorf("label: %w", natsort.ErrMalformed)), issue.MalformedLabelID, types.ExitValidation},
		{"invalid category", &taxonomy.ValidationError{Kind: "category", Subject: "x", FieldErrors: []error{taxonomy.ErrInvalidCategory}}, issue.InvalidTaxonomyID, types.ExitValidation},
		{"unknown", errors.New("boom"), 0, types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, code := classifyError(tt.err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClassifyError_CatalogEntriesExist(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		os.ErrPermission,
		loader.ErrSourceNotFound,
		index.ErrDuplicateKey,
		natsort.ErrMalformed,
	} {
		id, _ := classifyError(err)
		assert.NotNil(t, issue.Get(id), "no catalog entry for %v", err)
	}
}

func TestStyledError(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().
		WithOperation(opLoadTaxonomy).
		WithResource("data").
		WithSuggestion("check the data directory").
		Wrap(errors.New("taxonomy source not found")).
		BuildError()

	got := styledError(err, false)
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "failed to load taxonomy: data: taxonomy source not found")
	assert.Contains(t, got, "check the data directory")
	assert.NotContains(t, got, "Error chain:")

	assert.Contains(t, styledError(err, true), "Error chain:")
	assert.True(t, strings.HasSuffix(styledError(errors.New("plain"), false), "plain\n"))
}
