// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/taxon/taxon/pkg/types"
)

func TestOutputFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   OutputFormat
		wantErr bool
	}{
		{FormatJSON, false},
		{FormatText, false},
		{FormatMarkdown, false},
		{"pdf", true},
		{"JSON", true},
		{"", true},
	}

	for _, tt := range tests {
		err := tt.value.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("OutputFormat(%q).Validate() = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidOutputFormat) {
				t.Errorf("error should wrap ErrInvalidOutputFormat, got: %v", err)
			}
			var formatErr *InvalidFormatError
			if !errors.As(err, &formatErr) || formatErr.Value != tt.value {
				t.Errorf("error should be *InvalidFormatError for %q, got: %v", tt.value, err)
			}
		}
	}
}

func TestColorScheme_Validate(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := cs.Validate(); err != nil {
			t.Errorf("ColorScheme(%q).Validate() = %v", cs, err)
		}
	}
	err := ColorScheme("neon").Validate()
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("expected ErrInvalidColorScheme, got %v", err)
	}
	if got, want := err.Error(), `invalid color scheme "neon" (valid: auto, dark, light)`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLogLevel_Validate(t *testing.T) {
	t.Parallel()

	for _, l := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if err := l.Validate(); err != nil {
			t.Errorf("LogLevel(%q).Validate() = %v", l, err)
		}
	}
	if err := LogLevel("trace").Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DataDir = " "
	cfg.Version = ""
	cfg.Formats = []OutputFormat{FormatJSON, "pdf"}
	cfg.UI.ColorScheme = "neon"
	cfg.Log.Level = "trace"

	err := cfg.Validate()
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T: %v", err, err)
	}
	if len(cfgErr.FieldErrors) != 5 {
		t.Errorf("expected 5 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	for _, want := range []error{
		ErrInvalidConfig,
		types.ErrInvalidFilesystemPath,
		ErrInvalidVersion,
		ErrInvalidOutputFormat,
		ErrInvalidColorScheme,
		ErrInvalidLogLevel,
	} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}

func TestConfig_FormatNames(t *testing.T) {
	t.Parallel()

	cfg := &Config{Formats: []OutputFormat{FormatText, FormatJSON}}
	got := cfg.FormatNames()
	if len(got) != 2 || got[0] != "txt" || got[1] != "json" {
		t.Errorf("FormatNames() = %v", got)
	}
}
