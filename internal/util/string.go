// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides byte and string helpers shared by stackfmt.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// UNICODE: Byte-level truncation must never split a multi-byte code point.
// Every helper here cuts on a code-point boundary so the result stays valid
// UTF-8 whenever the input was.

// =============================================================================
// CODE-POINT BOUNDARIES
// =============================================================================

// IsContinuation reports whether b is a UTF-8 continuation byte (10xxxxxx),
// i.e. a byte that cannot start a code point.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// ClosestBoundary returns the largest length <= maxLen at which raw can be
// cut without splitting a multi-byte code point.
//
// Callers are expected to pass maxLen < len(raw); out of range values are
// clamped rather than rejected. raw is assumed to be well-formed UTF-8.
func ClosestBoundary[T ~string | ~[]byte](raw T, maxLen int) int {
	if maxLen <= 0 {
		return 0
	}
	if maxLen >= len(raw) {
		return len(raw)
	}
	if !IsContinuation(raw[maxLen]) {
		// Next byte starts a new code point.
		return maxLen
	}
	n := maxLen
	for n > 0 && IsContinuation(raw[n-1]) {
		n--
	}
	// raw[n-1] is the lead byte of the code point that did not fit.
	if n > 0 {
		n--
	}
	return n
}

// TruncateBytes returns the longest prefix of s that is at most maxBytes
// long and ends on a code-point boundary.
func TruncateBytes(s string, maxBytes int) string {
	if maxBytes >= len(s) {
		return s
	}
	return s[:ClosestBoundary(s, maxBytes)]
}

// =============================================================================
// DISPLAY WIDTH
// =============================================================================

// StringWidth returns the display width of s in terminal columns.
// East Asian wide characters count as 2, combining marks as 0.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth returns the longest prefix of s that fits in maxWidth
// terminal columns. No ellipsis is appended.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth {
			return s[:i]
		}
		width += w
	}
	return s
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizationForms lists the accepted values for Normalize.
var NormalizationForms = []string{"none", "nfc", "nfd", "nfkc", "nfkd"}

// IsNormalizationForm reports whether name is one of NormalizationForms.
func IsNormalizationForm(name string) bool {
	name = strings.ToLower(name)
	for _, f := range NormalizationForms {
		if f == name {
			return true
		}
	}
	return name == ""
}

// Normalize applies the named Unicode normalization form to s.
// "none", "" and unknown names return s unchanged.
func Normalize(form, s string) string {
	switch strings.ToLower(form) {
	case "nfc":
		return norm.NFC.String(s)
	case "nfd":
		return norm.NFD.String(s)
	case "nfkc":
		return norm.NFKC.String(s)
	case "nfkd":
		return norm.NFKD.String(s)
	default:
		return s
	}
}
