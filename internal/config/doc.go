// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the user configuration directory
// ($XDG_CONFIG_HOME/taxon on Linux, ~/Library/Application Support/taxon on macOS,
// %APPDATA%\taxon on Windows) or, failing that, from the working directory.
// The file is validated against the embedded #Config schema (config_schema.cue)
// and merged on top of the defaults. TAXON_* environment variables override both,
// with dots replaced by underscores (TAXON_UI_VERBOSE, TAXON_SORT_OTHER_LAST).
package config
