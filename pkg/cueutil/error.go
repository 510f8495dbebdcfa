// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

type (
	// Issue is one schema violation at a record path.
	Issue struct {
		// Path is the JSON path to the invalid value (e.g., "values[3].handle").
		Path string
		// Message is the CUE error message with the path prefix removed.
		Message string
	}

	// ValidationError reports every schema violation found in one file.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string
		// Issues lists the violations in the order CUE reported them.
		Issues []Issue
	}
)

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", e.FilePath, e.Issues[0])
	}
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// FormatError converts a CUE error into a *ValidationError whose issues carry
// JSON path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - data/values.yml: values[3].handle: incomplete value string
//   - config.cue: sort.other_last: conflicting values true and "yes"
//
// Errors that did not come from CUE are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	verr := &ValidationError{FilePath: filePath}
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		verr.Issues = append(verr.Issues, Issue{Path: pathStr, Message: msg})
	}
	return verr
}

// formatPath converts a CUE error path to JSON-path notation. CUE reports
// paths as flat string slices (e.g., ["values", "0", "handle"]) where numeric
// elements are list indices; the result reads "values[0].handle".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
