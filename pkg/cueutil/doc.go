// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities.
//
// Configuration files are written in CUE and taxonomy source records are
// written in YAML or TOML. Both are checked against embedded CUE schemas the
// same way:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) the user data and unify it with the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.DecodeValue[valuesFile](
//	    schemaBytes,
//	    rawYAML,
//	    "#Values",
//	    cueutil.WithFilename("data/values.yml"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the record path, e.g. values[3].handle
//	}
//	return result.Value, nil
package cueutil
