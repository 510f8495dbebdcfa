// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/taxon/taxon/internal/testutil"
	"github.com/taxon/taxon/pkg/types"
)

func TestLoadOptions_Validate_AllEmpty(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{}
	if err := opts.Validate(); err != nil {
		t.Errorf("empty LoadOptions should be valid, got error: %v", err)
	}
}

func TestLoadOptions_Validate_AllValid(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: "/tmp/config.cue",
		ConfigDirPath:  "/tmp/config",
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("LoadOptions with valid paths should be valid, got error: %v", err)
	}
}

func TestLoadOptions_Validate_InvalidConfigFilePath(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: types.FilesystemPath("   "),
	}
	err := opts.Validate()
	if err == nil {
		t.Fatal("LoadOptions with whitespace-only ConfigFilePath should be invalid")
	}
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("error should wrap ErrInvalidLoadOptions, got: %v", err)
	}

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
	}
	if len(loadErr.FieldErrors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(loadErr.FieldErrors))
	}
	if !errors.Is(loadErr.FieldErrors[0], types.ErrInvalidFilesystemPath) {
		t.Errorf("field error should wrap ErrInvalidFilesystemPath, got: %v", loadErr.FieldErrors[0])
	}
}

func TestLoadOptions_Validate_MultipleInvalid(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: types.FilesystemPath("   "),
		ConfigDirPath:  types.FilesystemPath("\t"),
	}
	err := opts.Validate()

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
	}
	if len(loadErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(loadErr.FieldErrors), loadErr.FieldErrors)
	}
}

func TestInvalidLoadOptionsError_Error(t *testing.T) {
	t.Parallel()

	single := &InvalidLoadOptionsError{FieldErrors: []error{errors.New("test error")}}
	if msg := single.Error(); msg != "invalid load options: test error" {
		t.Errorf("Error() = %q, want %q", msg, "invalid load options: test error")
	}

	multiple := &InvalidLoadOptionsError{FieldErrors: []error{errors.New("err1"), errors.New("err2")}}
	if msg := multiple.Error(); msg != "invalid load options: 2 field errors" {
		t.Errorf("Error() = %q, want %q", msg, "invalid load options: 2 field errors")
	}
}

func TestProvider_Load_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: " "})
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("expected ErrInvalidLoadOptions, got %v", err)
	}
}

func TestProvider_Source(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewProvider()

	got, err := p.Source(LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Source() error: %v", err)
	}
	if got != "" {
		t.Errorf("Source() = %q, want empty without a config file", got)
	}

	want := testutil.WriteFile(t, dir, "config.cue", "version: \"2025-01\"\n")
	got, err = p.Source(LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Source() error: %v", err)
	}
	if got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}

	explicit := filepath.Join(dir, "missing.cue")
	if _, err := p.Source(LoadOptions{ConfigFilePath: types.FilesystemPath(explicit)}); !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("expected ErrConfigFileNotFound, got %v", err)
	}
}
