// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands of taxon.
//
// Every command receives the App composition root, loads configuration
// through its ConfigProvider, and renders failures itself before returning an
// ExitError so the process exit code tells validation failures (2) apart from
// operational ones (1).
package cmd
