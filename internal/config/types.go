// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taxon/taxon/pkg/types"
)

const (
	// FormatJSON writes categories.json and attributes.json.
	// Defined locally to avoid coupling config to internal/dist;
	// the CLI converts to dist.Format at the boundary.
	FormatJSON OutputFormat = "json"
	// FormatText writes the plain-text listings.
	FormatText OutputFormat = "txt"
	// FormatMarkdown writes the per-vertical docs.
	FormatMarkdown OutputFormat = "md"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// DefaultVersion labels output when no version is configured.
	DefaultVersion = "unversioned"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidVersion is returned when the version label is blank.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat names one distribution format.
	OutputFormat string

	// InvalidFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value OutputFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DataDir holds values, attributes, and the categories directory.
		DataDir types.FilesystemPath `json:"data_dir" mapstructure:"data_dir"`
		// OutputDir receives distribution files.
		OutputDir types.FilesystemPath `json:"output_dir" mapstructure:"output_dir"`
		// Version labels distribution output.
		Version string `json:"version" mapstructure:"version"`
		// Formats lists the formats `taxon dist` writes by default.
		Formats []OutputFormat `json:"formats" mapstructure:"formats"`
		// Sort configures `taxon sort`.
		Sort SortConfig `json:"sort" mapstructure:"sort"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures the logger
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// SortConfig configures natural sorting of free-form input.
	SortConfig struct {
		// OtherLast pins labels normalizing to "other" after everything else.
		OtherLast bool `json:"other_last" mapstructure:"other_last"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme used for rendered markdown
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// Validate returns every invalid field of the Config joined in an
// InvalidConfigError, or nil.
func (c Config) Validate() error {
	var errs []error
	if err := c.DataDir.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data_dir: %w", err))
	}
	if err := c.OutputDir.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output_dir: %w", err))
	}
	if strings.TrimSpace(c.Version) == "" {
		errs = append(errs, fmt.Errorf("version: %w: must be non-empty", ErrInvalidVersion))
	}
	for i, f := range c.Formats {
		if err := f.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("formats[%d]: %w", i, err))
		}
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// FormatNames returns the configured formats as plain strings.
func (c Config) FormatNames() []string {
	names := make([]string, len(c.Formats))
	for i, f := range c.Formats {
		names[i] = string(f)
	}
	return names
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: json, txt, md)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an InvalidFormatError if f is not a known format.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatJSON, FormatText, FormatMarkdown:
		return nil
	default:
		return &InvalidFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an InvalidColorSchemeError if cs is not a known scheme.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an InvalidLogLevelError if l is not a known level.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "data",
		OutputDir: "dist",
		Version:   DefaultVersion,
		Formats:   []OutputFormat{FormatJSON, FormatText, FormatMarkdown},
		Sort: SortConfig{
			OtherLast: true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}
