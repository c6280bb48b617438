// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// stackfmt command.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (STACKFMT_BUFFER_SIZE, STACKFMT_ENGINE, STACKFMT_NORMALIZE)
//   - $STACKFMT_CONFIG, or ~/.stackfmt/config.toml
//   - Built-in defaults
//
// # Example File
//
//	[buffer]
//	size = 64
//
//	[format]
//	engine = "template"
//
//	[output]
//	normalize = "nfc"
//	fit_terminal = false
//	show_truncation = true
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf := make([]byte, cfg.Buffer.Size)
package config
