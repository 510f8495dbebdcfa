// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when a required source file is missing.
	ErrSourceNotFound = errors.New("taxonomy source not found")

	// ErrAmbiguousSource is returned when a source exists in more than one format.
	ErrAmbiguousSource = errors.New("taxonomy source exists in more than one format")

	// ErrMultipleParents is returned when two categories list the same child.
	ErrMultipleParents = errors.New("category is listed as a child of more than one category")
)

type (
	// SourceError reports a problem with a whole source file.
	SourceError struct {
		Path string
		Err  error
	}

	// RecordError reports a problem with one record of a source file.
	RecordError struct {
		Path string
		// Field is the top-level list holding the record ("records",
		// "base_attributes", "extended_attributes").
		Field string
		Index int
		Err   error
	}
)

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %s[%d]: %v", e.Path, e.Field, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
