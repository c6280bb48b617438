// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// boundary_cmd.go - Code point boundary inspection.
//
// Command: boundary <max> <text>
// Short:   Print the longest prefix of text that fits in max bytes
//
// Examples:
//   stackfmt boundary 4 "Add€"            3
//   stackfmt boundary 6 "𐍈€ "             4
//   stackfmt boundary 6 "𐍈€ " --json      Boundary in JSON format
//
// Flags:
//   --json              Output in JSON format

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/stackfmt/internal/util"
)

// HandleBoundary prints the largest cut length <= max that does not split
// a UTF-8 code point of the text.
func HandleBoundary(args Args, env Env) error {
	if len(args.Rest) < 2 {
		return NewUsageError("boundary needs a length and a text", `stackfmt boundary 5 "ä€"`)
	}

	limit, err := ParseIntWithValidation(args.Rest[0], "max")
	if err != nil {
		return err
	}
	text := strings.Join(args.Rest[1:], " ")

	return OutputJSON(env.Stdout, args.JSON, "boundary", func() (interface{}, error) {
		n := util.ClosestBoundary(text, limit)
		data := BoundaryData{Max: limit, Boundary: n, Prefix: util.TruncateBytes(text, limit)}
		if !args.JSON {
			fmt.Fprintln(env.Stdout, n)
			if !args.Quiet {
				fmt.Fprintf(env.Stderr, "%s%q\n", LabelStyle.Render("prefix"), data.Prefix)
			}
		}
		return data, nil
	})
}
