// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/respack/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/respack/config.toml on macOS, %APPDATA%\respack\config.toml
// on Windows), falling back to a config.toml in the current directory. The package provides
// type-safe configuration access for the pack blocklist, prefix overrides, the default
// prefix, and UI settings.
//
// File values are merged over defaults. The RESPACK_* environment variables are read
// later, by the registry, and fill in settings the file and flags leave unset; explicit
// settings win. The blocklist is the union of all sources.
package config
