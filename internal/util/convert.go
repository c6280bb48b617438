// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// AppendScalar appends the decimal text of a scalar value to dst using the
// strconv Append functions, so the caller can render into a stack array.
// It reports false when v is not an integer, float or bool; dst is then
// returned unchanged.
func AppendScalar(dst []byte, v any) ([]byte, bool) {
	switch x := v.(type) {
	case int:
		return strconv.AppendInt(dst, int64(x), 10), true
	case int8:
		return strconv.AppendInt(dst, int64(x), 10), true
	case int16:
		return strconv.AppendInt(dst, int64(x), 10), true
	case int32:
		return strconv.AppendInt(dst, int64(x), 10), true
	case int64:
		return strconv.AppendInt(dst, x, 10), true
	case uint:
		return strconv.AppendUint(dst, uint64(x), 10), true
	case uint8:
		return strconv.AppendUint(dst, uint64(x), 10), true
	case uint16:
		return strconv.AppendUint(dst, uint64(x), 10), true
	case uint32:
		return strconv.AppendUint(dst, uint64(x), 10), true
	case uint64:
		return strconv.AppendUint(dst, x, 10), true
	case uintptr:
		return strconv.AppendUint(dst, uint64(x), 10), true
	case float32:
		return strconv.AppendFloat(dst, float64(x), 'g', -1, 32), true
	case float64:
		return strconv.AppendFloat(dst, x, 'g', -1, 64), true
	case bool:
		return strconv.AppendBool(dst, x), true
	}
	return dst, false
}

// ParseArg converts a command-line argument into the most specific scalar
// it spells: int64, then float64, then the string itself.
func ParseArg(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// ParseFloat also accepts words like "inf" and "NaN"; keep those as text.
	if !hasDigit(s) {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// ParseArgs applies ParseArg to every element of args.
func ParseArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = ParseArg(a)
	}
	return out
}
