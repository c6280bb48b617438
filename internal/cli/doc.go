// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the stackfmt command line.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags and command arguments
//   - Env: Process streams and terminal facts, replaceable in tests
//   - ReplSession: Interactive session whose settings follow the config file
//
// # Usage
//
//	os.Exit(cli.Run(os.Args[1:], cli.DefaultEnv()))
//
// Every command accepts --json and then prints a single JSONResponse on
// stdout. Errors map to exit codes through ExitCodeFor.
package cli
