// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stackfmt

import (
	"unsafe"

	"github.com/jeranaias/stackfmt/internal/util"
)

// =============================================================================
// WRITER
// =============================================================================

// Writer accumulates formatted fragments into a caller-owned byte slice.
//
// The written prefix buf[:used] is valid UTF-8 after every call: a fragment
// that does not fit is cut on a code-point boundary and everything written
// after it is dropped. Writes never fail, so formatting engines run to
// completion and the caller simply gets a shorter string.
//
// A Writer borrows buf until String is called. The caller must not touch
// buf in the meantime, and a Writer is not safe for concurrent use.
type Writer struct {
	buf      []byte
	used     int  // bytes of buf holding output
	overflow bool // a fragment did not fit; later fragments are ignored
	done     bool // String has handed out a view of buf
}

// New returns an empty Writer over buf. buf may have any length, including
// zero; its contents are overwritten.
func New(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// WriteString implements io.StringWriter. It always reports len(s), nil.
func (w *Writer) WriteString(s string) (int, error) {
	if w.overflow || w.done {
		return len(s), nil
	}

	remaining := w.buf[w.used:]
	if len(remaining) >= len(s) {
		w.used += copy(remaining, s)
		return len(s), nil
	}

	w.overflow = true
	n := util.ClosestBoundary(s, len(remaining))
	w.used += copy(remaining, s[:n])
	return len(s), nil
}

// Write implements io.Writer. p must hold whole UTF-8 code points, which is
// what fmt and the fragment engine hand it. It always reports len(p), nil.
func (w *Writer) Write(p []byte) (int, error) {
	if w.overflow || w.done {
		return len(p), nil
	}

	remaining := w.buf[w.used:]
	if len(remaining) >= len(p) {
		w.used += copy(remaining, p)
		return len(p), nil
	}

	w.overflow = true
	n := util.ClosestBoundary(p, len(remaining))
	w.used += copy(remaining, p[:n])
	return len(p), nil
}

// String ends the formatting operation and returns the written prefix as a
// string that shares memory with buf. The view stays valid for as long as
// the caller leaves buf alone; writes made after String are discarded so
// the view cannot change underneath it.
//
// No copy or UTF-8 re-scan is made. Write and WriteString are the only
// paths that modify buf[:used], and both cut on a code-point boundary, so
// the prefix is valid UTF-8 whenever the fragments were.
func (w *Writer) String() string {
	w.done = true
	if w.used == 0 {
		return ""
	}
	return unsafe.String(&w.buf[0], w.used)
}

// Bytes returns the written prefix without ending the operation.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.used:w.used]
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.used }

// Cap returns the size of the underlying buffer.
func (w *Writer) Cap() int { return len(w.buf) }

// Available returns the number of bytes still free.
func (w *Writer) Available() int { return len(w.buf) - w.used }

// Truncated reports whether some output was dropped.
func (w *Writer) Truncated() bool { return w.overflow }
