// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides byte and string helpers shared by stackfmt.
//
// # Key Functions
//
// Code-point boundaries:
//   - IsContinuation: reports UTF-8 continuation bytes (10xxxxxx)
//   - ClosestBoundary: largest safe cut length <= max for string or []byte
//   - TruncateBytes: byte-limited truncation that never splits a code point
//
// Display and normalization:
//   - StringWidth, TruncateWidth: terminal column width via go-runewidth
//   - Normalize: NFC/NFD/NFKC/NFKD via golang.org/x/text
//
// Scalars:
//   - AppendScalar: strconv-based rendering of numbers and bools into a
//     caller-owned byte slice
//   - ParseArg, ParseArgs: command-line text to int64/float64/string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	raw := []byte("Add€")
//	n := util.ClosestBoundary(raw, 4) // 3: the euro sign does not fit
//
//	var scratch [32]byte
//	b, _ := util.AppendScalar(scratch[:0], 42)
package util
