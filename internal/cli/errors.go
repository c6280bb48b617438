// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for stackfmt commands.
//
// Command handlers return errors; Run decides how to display them and
// which exit code to use.

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/stackfmt/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitFormatError indicates the formatting engine rejected the input
	ExitFormatError = 4
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a command failure with context.
type CommandError struct {
	Command string // Command that failed (e.g., "fmt", "config")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Command, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Command, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports bad command-line usage.
type UsageError struct {
	Message string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Message, e.Example)
	}
	return e.Message
}

// FormatError wraps a formatting engine failure. The formatted result for
// such input is empty.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format failed: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a usage error with an example invocation.
func NewUsageError(message, example string) error {
	return &UsageError{Message: message, Example: example}
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var formatErr *FormatError
	var validateErrs config.ValidateErrors
	var configErr *configLoadError

	switch {
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &formatErr):
		return ExitFormatError
	case errors.As(err, &validateErrs), errors.As(err, &configErr):
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}

// configLoadError marks failures to read or parse the config file.
type configLoadError struct {
	err error
}

func (e *configLoadError) Error() string { return "config: " + e.err.Error() }

func (e *configLoadError) Unwrap() error { return e.err }
