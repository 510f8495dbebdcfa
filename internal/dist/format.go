// SPDX-License-Identifier: MPL-2.0

package dist

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// FormatJSON writes categories.json and attributes.json.
	FormatJSON Format = "json"
	// FormatText writes categories.txt, attributes.txt, and attribute_values.txt.
	FormatText Format = "txt"
	// FormatMarkdown writes docs/<vertical>.md.
	FormatMarkdown Format = "md"
)

// ErrInvalidFormat is returned when a Format is not one of the known formats.
var ErrInvalidFormat = errors.New("invalid distribution format")

type (
	// Format names a group of distribution files.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}
)

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q (valid: %v)", e.Value, AllFormats())
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// AllFormats returns every known format in output order.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatText, FormatMarkdown}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Validate returns nil if the Format is known, or an error wrapping
// ErrInvalidFormat otherwise.
func (f Format) Validate() error {
	if slices.Contains(AllFormats(), f) {
		return nil
	}
	return &InvalidFormatError{Value: f}
}

// ParseFormats converts names into formats, dropping duplicates. An empty
// list selects every format.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return AllFormats(), nil
	}
	var formats []Format
	for _, name := range names {
		f := Format(name)
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}
