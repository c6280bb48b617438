// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Typo correction for commands and flags.
package cli

import (
	"strings"
)

// validCommands lists the commands and aliases Parse accepts.
var validCommands = []string{
	"fmt", "format", "printf", "check", "boundary", "repl", "config", "version", "help",
}

// replCommands lists the session commands of the repl.
var replCommands = []string{
	":size", ":engine", ":normalize", ":config", ":help", ":quit", ":exit",
}

// SuggestCommand returns the command closest to input, or "" when nothing
// is close enough to be a likely typo.
func SuggestCommand(input string) string {
	return closest(strings.ToLower(input), validCommands)
}

// closest returns the candidate within an edit distance that grows with
// the input length: one edit up to three characters, two up to eight,
// three beyond.
func closest(input string, candidates []string) string {
	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	best, bestDistance := "", maxDistance+1
	for _, c := range candidates {
		d := levenshteinDistance(input, c)
		if d == 0 {
			return ""
		}
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// levenshteinDistance is the number of single byte insertions, deletions
// or substitutions turning s1 into s2.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

// unknownCommandError builds the usage error for an unrecognized command,
// pointing at the closest match when there is one.
func unknownCommandError(kind, name string, candidates []string) error {
	msg := "unknown " + kind + ": " + name
	if s := closest(strings.ToLower(name), candidates); s != "" {
		msg += " (did you mean " + s + "?)"
	}
	return NewUsageError(msg, "stackfmt help")
}
