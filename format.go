// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stackfmt

import (
	"fmt"
	"io"

	"github.com/jeranaias/stackfmt/internal/fragment"
)

// Emitter is a formatting engine. It writes its output to w as a sequence
// of UTF-8 fragments and reports whether formatting succeeded.
type Emitter func(w io.StringWriter) error

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Format runs emit against buf and returns the result, truncated on a
// code-point boundary if it does not fit. If emit fails the result is ""
// whatever was written before the failure.
func Format(buf []byte, emit Emitter) string {
	s, _ := FormatTruncated(buf, emit)
	return s
}

// FormatTruncated is Format that also reports whether the output was cut.
func FormatTruncated(buf []byte, emit Emitter) (string, bool) {
	w := New(buf)
	if emit != nil {
		if err := emit(w); err != nil {
			return "", false
		}
	}
	return w.String(), w.Truncated()
}

// Template formats tmpl with args using brace placeholders:
// {} takes the next argument, {N} takes argument N, {{ and }} are literal
// braces. A malformed template or a missing argument yields "".
//
//	var buf [6]byte
//	stackfmt.Template(buf[:], "Hello{}", 42) // "Hello4"
func Template(buf []byte, tmpl string, args ...any) string {
	s, _ := TemplateTruncated(buf, tmpl, args...)
	return s
}

// TemplateTruncated is Template that also reports whether the output was cut.
func TemplateTruncated(buf []byte, tmpl string, args ...any) (string, bool) {
	return FormatTruncated(buf, func(w io.StringWriter) error {
		return fragment.Emit(w, tmpl, args...)
	})
}

// Sprintf formats with fmt verbs into buf. fmt reports bad verbs inline
// (for example %!d(string=x)) rather than failing, so the result is only
// ever shortened, never emptied.
func Sprintf(buf []byte, format string, args ...any) string {
	s, _ := SprintfTruncated(buf, format, args...)
	return s
}

// SprintfTruncated is Sprintf that also reports whether the output was cut.
func SprintfTruncated(buf []byte, format string, args ...any) (string, bool) {
	w := New(buf)
	fmt.Fprintf(w, format, args...)
	return w.String(), w.Truncated()
}
