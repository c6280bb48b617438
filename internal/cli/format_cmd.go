// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// format_cmd.go - The fmt and printf commands.

package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/jeranaias/stackfmt"
	"github.com/jeranaias/stackfmt/internal/config"
	"github.com/jeranaias/stackfmt/internal/fragment"
	"github.com/jeranaias/stackfmt/internal/util"
)

// HandleFormat formats args.Rest[0] with the remaining arguments into a
// buffer of cfg.Buffer.Size bytes and prints the result.
func HandleFormat(cfg *config.Config, args Args, env Env, logger *log.Logger) error {
	if len(args.Rest) == 0 {
		return NewUsageError("missing template", `stackfmt fmt "Hello {}" world`)
	}

	command := "fmt"
	if cfg.Format.Engine == config.EnginePrintf {
		command = "printf"
	}

	return OutputJSON(env.Stdout, args.JSON, command, func() (interface{}, error) {
		data, err := Render(cfg, args.Rest[0], args.Rest[1:], env.TermWidth)
		if err != nil {
			return data, err
		}
		logger.Printf("wrote %d of %d bytes (truncated=%t)", data.Bytes, data.Capacity, data.Truncated)

		if !args.JSON {
			fmt.Fprintln(env.Stdout, data.Output)
		}
		if data.Truncated && cfg.Output.ShowTruncation {
			printTruncationNotice(env.Stderr, data)
		}
		return data, nil
	})
}

// Render runs the configured engine over tmpl and raw arguments. Arguments
// that look numeric are passed as numbers. width limits the display width
// of the result when cfg.Output.FitTerminal is set.
//
// When the engine fails the returned data has empty Output and the error is
// a *FormatError.
func Render(cfg *config.Config, tmpl string, raw []string, width int) (FormatData, error) {
	form := cfg.Output.Normalize
	tmpl = util.Normalize(form, tmpl)
	normalized := make([]string, len(raw))
	for i, a := range raw {
		normalized[i] = util.Normalize(form, a)
	}
	fmtArgs := util.ParseArgs(normalized)

	buf := make([]byte, cfg.Buffer.Size)
	data := FormatData{Capacity: len(buf), Engine: cfg.Format.Engine}

	var (
		out       string
		truncated bool
	)
	switch cfg.Format.Engine {
	case config.EnginePrintf:
		out, truncated = stackfmt.SprintfTruncated(buf, tmpl, fmtArgs...)
	default:
		var engineErr error
		out, truncated = stackfmt.FormatTruncated(buf, func(w io.StringWriter) error {
			engineErr = fragment.Emit(w, tmpl, fmtArgs...)
			return engineErr
		})
		if engineErr != nil {
			return data, &FormatError{Err: engineErr}
		}
	}

	if cfg.Output.FitTerminal && width > 0 {
		if clipped := util.TruncateWidth(out, width); len(clipped) < len(out) {
			out, truncated = clipped, true
		}
	}

	data.Output = out
	data.Truncated = truncated
	data.Bytes = len(out)
	return data, nil
}

// HandleCheck validates a brace template against the number of arguments
// given, without rendering it.
func HandleCheck(args Args, env Env) error {
	if len(args.Rest) == 0 {
		return NewUsageError("missing template", `stackfmt check "Hello {}" world`)
	}
	tmpl, nargs := args.Rest[0], len(args.Rest)-1

	return OutputJSON(env.Stdout, args.JSON, "check", func() (interface{}, error) {
		data := CheckData{Template: tmpl, Args: nargs}
		if err := fragment.Validate(tmpl, nargs); err != nil {
			return data, &FormatError{Err: err}
		}
		data.Valid = true
		if !args.JSON {
			fmt.Fprintln(env.Stdout, "ok")
		}
		return data, nil
	})
}

func printTruncationNotice(w io.Writer, data FormatData) {
	fmt.Fprintln(w, NoticeStyle.Render(
		fmt.Sprintf("[truncated] output kept %d of %d buffer bytes", data.Bytes, data.Capacity)))
}
