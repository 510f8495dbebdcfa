// SPDX-License-Identifier: MPL-2.0

package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilChild is returned by AddChild when the child is nil.
	ErrNilChild = errors.New("child category is nil")
	// ErrCycleDetected is the sentinel error wrapped by InvalidAttachmentError.
	ErrCycleDetected = errors.New("category cycle detected")

	// ErrInvalidCategory is wrapped by ValidationError for categories.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidAttribute is wrapped by ValidationError for attributes.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrInvalidValue is wrapped by ValidationError for values.
	ErrInvalidValue = errors.New("invalid value")

	// ErrIDFormat reports an id that does not match the expected format.
	ErrIDFormat = errors.New("malformed id")
	// ErrIDDepth reports a category id whose segment count disagrees with its level.
	ErrIDDepth = errors.New("id does not match depth")
	// ErrIDPrefix reports a category id that is not prefixed by its parent's id.
	ErrIDPrefix = errors.New("id does not start with parent id")
	// ErrBlankField reports a required field that is empty or whitespace-only.
	ErrBlankField = errors.New("required field is blank")
	// ErrMissingValues reports a base attribute without values.
	ErrMissingValues = errors.New("attribute has no values")
	// ErrUnknownPrimaryAttribute reports a value whose friendly id names no attribute.
	ErrUnknownPrimaryAttribute = errors.New("value references unknown attribute")
	// ErrInvalidSorting reports an unsupported attribute sorting policy.
	ErrInvalidSorting = errors.New("invalid sorting")
)

type (
	// InvalidAttachmentError is returned when AddChild would break the tree:
	// attaching a category to itself, to its own root, or below one of its
	// descendants.
	InvalidAttachmentError struct {
		Parent string
		Child  string
		Reason string
	}

	// ValidationError collects every problem found on one entity. It wraps the
	// kind sentinel (ErrInvalidCategory, ErrInvalidAttribute, ErrInvalidValue)
	// and each field error, so errors.Is works for both.
	ValidationError struct {
		// Kind is "category", "attribute", or "value".
		Kind string
		// Subject identifies the entity (category id, attribute friendly id, ...).
		Subject     string
		FieldErrors []error
	}
)

// Error implements the error interface for InvalidAttachmentError.
func (e *InvalidAttachmentError) Error() string {
	return fmt.Sprintf("cannot add category %q as child of %q: %s", e.Child, e.Parent, e.Reason)
}

// Unwrap returns ErrCycleDetected for errors.Is() compatibility.
func (e *InvalidAttachmentError) Unwrap() error { return ErrCycleDetected }

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%s %q is invalid: %s", e.Kind, e.Subject, strings.Join(msgs, "; "))
}

// Unwrap returns the kind sentinel followed by the field errors.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.FieldErrors)+1)
	errs = append(errs, kindSentinel(e.Kind))
	return append(errs, e.FieldErrors...)
}

func kindSentinel(kind string) error {
	switch kind {
	case kindCategory:
		return ErrInvalidCategory
	case kindAttribute:
		return ErrInvalidAttribute
	default:
		return ErrInvalidValue
	}
}

// newValidationError returns nil when there is nothing to report.
func newValidationError(kind, subject string, fieldErrors []error) error {
	if len(fieldErrors) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Subject: subject, FieldErrors: fieldErrors}
}

func blank(field string) error {
	return fmt.Errorf("%w: %s", ErrBlankField, field)
}
