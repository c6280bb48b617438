// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fragment implements a brace-template formatting engine that feeds
// its output to a writer one fragment at a time.
//
// Template syntax:
//
//	{}     next argument in order
//	{N}    argument N (zero based); does not advance the {} counter
//	{{ }}  literal braces
//
// Each literal run and each rendered argument is a separate WriteString
// call, so a truncating writer sees the same fragment sequence a
// hand-written formatter would produce.
package fragment

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/jeranaias/stackfmt/internal/util"
)

// ErrMissingArgument is returned when a placeholder refers past the end of
// the argument list.
var ErrMissingArgument = errors.New("missing argument")

// SyntaxError reports a malformed template.
type SyntaxError struct {
	Offset int    // byte offset of the offending brace
	Msg    string // what is wrong
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Msg)
}

// =============================================================================
// EMIT
// =============================================================================

// Emit renders tmpl with args into w. Rendering stops at the first syntax
// error, missing argument, or write error; fragments written before that
// point stay written.
func Emit(w io.StringWriter, tmpl string, args ...any) error {
	next := 0
	start := 0
	i := 0

	for i < len(tmpl) {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				if err := writeLiteral(w, tmpl[start:i+1]); err != nil {
					return err
				}
				i += 2
				start = i
				continue
			}
			if err := writeLiteral(w, tmpl[start:i]); err != nil {
				return err
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return &SyntaxError{Offset: i, Msg: "unclosed '{'"}
			}
			spec := tmpl[i+1 : i+1+end]

			idx, err := argIndex(spec, i, &next)
			if err != nil {
				return err
			}
			if idx >= len(args) {
				return fmt.Errorf("%w: placeholder at offset %d wants argument %d, have %d",
					ErrMissingArgument, i, idx, len(args))
			}
			if err := WriteArg(w, args[idx]); err != nil {
				return err
			}

			i += end + 2
			start = i

		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				if err := writeLiteral(w, tmpl[start:i+1]); err != nil {
					return err
				}
				i += 2
				start = i
				continue
			}
			return &SyntaxError{Offset: i, Msg: "unmatched '}'"}

		default:
			i++
		}
	}

	return writeLiteral(w, tmpl[start:])
}

// Validate checks tmpl against an argument count without rendering it.
func Validate(tmpl string, nargs int) error {
	args := make([]any, nargs)
	return Emit(discard{}, tmpl, args...)
}

func argIndex(spec string, offset int, next *int) (int, error) {
	if spec == "" {
		idx := *next
		*next++
		return idx, nil
	}
	idx, err := strconv.Atoi(strings.TrimSpace(spec))
	if err != nil || idx < 0 {
		return 0, &SyntaxError{Offset: offset, Msg: fmt.Sprintf("invalid argument index %q", spec)}
	}
	return idx, nil
}

func writeLiteral(w io.StringWriter, s string) error {
	if s == "" {
		return nil
	}
	_, err := w.WriteString(s)
	return err
}

// =============================================================================
// ARGUMENT RENDERING
// =============================================================================

// WriteArg renders a single argument as one fragment. Strings, byte slices,
// errors and fmt.Stringer values are written as their text; integers,
// floats and bools go through strconv into a stack scratch buffer; anything
// else falls back to fmt's %v.
func WriteArg(w io.StringWriter, v any) error {
	switch x := v.(type) {
	case string:
		return writeLiteral(w, x)
	case []byte:
		return writeBytes(w, x)
	case error:
		return writeLiteral(w, callMethod(v, "Error", x.Error))
	case fmt.Stringer:
		return writeLiteral(w, callMethod(v, "String", x.String))
	case nil:
		return writeLiteral(w, "<nil>")
	}

	var scratch [64]byte
	if b, ok := util.AppendScalar(scratch[:0], v); ok {
		return writeBytes(w, b)
	}

	if bw, ok := w.(io.Writer); ok {
		_, err := fmt.Fprint(bw, v)
		return err
	}
	return writeLiteral(w, fmt.Sprint(v))
}

// callMethod calls an Error or String method the way fmt does: a nil
// pointer receiver that panics renders as "<nil>", any other panic is
// reported inline.
func callMethod(v any, name string, method func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				s = "<nil>"
				return
			}
			s = fmt.Sprintf("%%!v(PANIC=%s method: %v)", name, r)
		}
	}()
	return method()
}

func writeBytes(w io.StringWriter, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if bw, ok := w.(io.Writer); ok {
		_, err := bw.Write(b)
		return err
	}
	_, err := w.WriteString(string(b))
	return err
}

type discard struct{}

func (discard) WriteString(s string) (int, error) { return len(s), nil }
