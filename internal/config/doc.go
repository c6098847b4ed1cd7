// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/c2sh/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/c2sh/config.toml on macOS, %APPDATA%\c2sh\config.toml
// on Windows). The package provides type-safe configuration access covering runner
// selection, strict failure mode, frame debugging, the word store cap and UI settings.
//
// Unknown runner modes and out-of-range store caps are rejected at load time with
// actionable error messages.
package config
