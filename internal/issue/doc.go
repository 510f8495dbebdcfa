// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions; the catalog in this package holds a markdown explanation for
// each class of taxonomy failure, rendered with glamour when the CLI runs
// verbosely.
package issue
