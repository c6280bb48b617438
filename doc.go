// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stackfmt formats text into a caller-supplied fixed-size byte
// buffer and returns the result as a string view of that buffer.
//
// When the output does not fit, it is cut at the last UTF-8 code-point
// boundary that fits, so the returned string is always valid UTF-8 and is
// the longest such prefix of the full output. The buffer is never grown.
//
// # Key Types
//
//   - Writer: io.Writer / io.StringWriter sink over a borrowed []byte
//   - Emitter: the formatting engine contract, a func that writes fragments
//
// # Entry Points
//
//   - Template: brace placeholders ({} / {N} / {{ }}), "" on a bad template
//   - Sprintf: fmt verbs
//   - Format: any Emitter, "" when the emitter fails
//
// Each has a ...Truncated variant that also reports whether output was cut.
//
// # Usage
//
//	var buf [16]byte
//	s := stackfmt.Template(buf[:], "The answer is {}", 42)
//	// s == "The answer is 42", sharing memory with buf
//
//	var small [4]byte
//	s = stackfmt.Template(small[:], "Add{}", "€")
//	// s == "Add": the 3-byte euro sign does not fit in 1 byte
//
// The returned string aliases the buffer. Reusing the buffer for another
// operation changes strings handed out earlier.
package stackfmt
