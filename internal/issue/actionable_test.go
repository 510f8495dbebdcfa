// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// customJoin joins causes under its own message.
type customJoin struct{ errs []error }

func (e *customJoin) Error() string   { return fmt.Sprintf("invalid category: %d problem(s)", len(e.errs)) }
func (e *customJoin) Unwrap() []error { return e.errs }

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load taxonomy"},
			expected: "failed to load taxonomy",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load taxonomy", Resource: "./data"},
			expected: "failed to load taxonomy: ./data",
		},
		{
			name:     "full context",
			err:      &ActionableError{Operation: "load taxonomy", Resource: "./data", Cause: errors.New("values.yml: not found")},
			expected: "failed to load taxonomy: ./data: values.yml: not found",
		},
		{
			name: "joined causes are counted",
			err: &ActionableError{
				Operation: "load taxonomy",
				Cause:     errors.Join(errors.New("a"), errors.New("b"), errors.New("c")),
			},
			expected: "failed to load taxonomy: 3 problems",
		},
		{
			name: "custom multi-error kept whole",
			err: &ActionableError{
				Operation: "validate taxonomy",
				Cause:     &customJoin{errs: []error{errors.New("a"), errors.New("b")}},
			},
			expected: "failed to validate taxonomy: invalid category: 2 problem(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	joined := errors.Join(
		errors.New("values.yml: records[2]: value with friendly_id \"color__red\" is already taken"),
		fmt.Errorf("aa.yml: records[0]: %w", errors.New("category with id \"aa-9\" not found")),
	)

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load taxonomy",
				Resource:    "./data",
				Suggestions: []string{"Run 'taxon validate'", "Check file permissions"},
			},
			contains: []string{
				"failed to load taxonomy: ./data",
				"• Run 'taxon validate'",
				"• Check file permissions",
			},
		},
		{
			name:     "no error chain in non-verbose",
			err:      &ActionableError{Operation: "parse config", Cause: errors.New("syntax error")},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "write distribution",
				Cause:     &ActionableError{Operation: "write categories.json", Cause: errors.New("permission denied")},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to write categories.json: permission denied",
				"2. permission denied",
			},
		},
		{
			name: "joined problems listed",
			err:  &ActionableError{Operation: "load taxonomy", Cause: joined},
			contains: []string{
				"failed to load taxonomy: 2 problems",
				"\n  - values.yml: records[2]:",
				"\n  - aa.yml: records[0]: category with id \"aa-9\" not found",
			},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "joined problems verbose",
			err:     &ActionableError{Operation: "load taxonomy", Cause: joined},
			verbose: true,
			contains: []string{
				"problem 2:",
				"2. category with id \"aa-9\" not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("write distribution").
		WithResource("dist/").
		WithSuggestion("Check permissions").
		WithSuggestions("Use --out", "Retry").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "write distribution" || err.Resource != "dist/" {
		t.Errorf("unexpected context: %+v", err)
	}
	if len(err.Suggestions) != 3 || !err.HasSuggestions() {
		t.Errorf("Suggestions = %v", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}

	if NewErrorContext().Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return a nil interface")
	}

	var target *ActionableError
	if !errors.As(NewErrorContext().WithOperation("x").BuildError(), &target) {
		t.Error("BuildError() should return *ActionableError")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	err := WrapWithContext(errors.New("gone"), "show category", "aa-9")
	if got := err.Error(); got != "failed to show category: aa-9: gone" {
		t.Errorf("Error() = %q", got)
	}
}
