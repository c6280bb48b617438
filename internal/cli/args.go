// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing shared by all stackfmt commands.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits raw arguments into flags and positional arguments.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short aliases: -q, -v, -s value
//   - Boolean flags: --flag (no value needed)
//   - "--" ends flag parsing; everything after it is positional
//   - Negative numbers ("-7", "-2.5") are positional, not flags
//
// Flags must be declared up front so a boolean flag never swallows the
// template that follows it.
type ArgParser struct {
	flags      map[string]string // value flags (--size=16)
	boolFlags  map[string]bool   // boolean flags (--quiet)
	positional []string          // everything else, in order
	raw        []string          // original raw arguments
}

// FlagSpec declares the flags a parser accepts. Aliases map a short name
// to its long name.
type FlagSpec struct {
	Value   []string
	Bool    []string
	Aliases map[string]string
}

// NewArgParser parses raw according to spec.
//
// Example:
//
//	p, _ := NewArgParser([]string{"--size", "6", "fmt", "-q", "Hello{}", "42"}, globalFlags)
//	p.Flag("size")        // "6"
//	p.BoolFlag("quiet")   // true
//	p.Positional(0)       // "fmt"
func NewArgParser(raw []string, spec FlagSpec) (*ArgParser, error) {
	parser := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
		raw:       raw,
	}

	isValue := make(map[string]bool, len(spec.Value))
	for _, name := range spec.Value {
		isValue[name] = true
	}
	isBool := make(map[string]bool, len(spec.Bool))
	for _, name := range spec.Bool {
		isBool[name] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" || isNumber(arg) {
			parser.positional = append(parser.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value, hasValue := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}
		if long, ok := spec.Aliases[name]; ok {
			name = long
		}

		switch {
		case isBool[name]:
			if !hasValue {
				parser.boolFlags[name] = true
				continue
			}
			b, err := ParseBoolString(value)
			if err != nil {
				return nil, NewUsageError(fmt.Sprintf("--%s: %v", name, err), "--"+name+"=true")
			}
			parser.boolFlags[name] = b

		case isValue[name]:
			if !hasValue {
				if i+1 >= len(raw) {
					return nil, NewUsageError(fmt.Sprintf("--%s requires a value", name), "--"+name+" VALUE")
				}
				i++
				value = raw[i]
			}
			parser.flags[name] = value

		default:
			return nil, NewUsageError(fmt.Sprintf("unknown flag: %s", arg), "stackfmt help")
		}
	}

	return parser, nil
}

// Flag returns the value of a flag, or "" if unset.
func (p *ArgParser) Flag(name string) string {
	return p.flags[name]
}

// HasFlag reports whether a value flag was given.
func (p *ArgParser) HasFlag(name string) bool {
	_, ok := p.flags[name]
	return ok
}

// FlagInt returns a flag parsed as an int.
func (p *ArgParser) FlagInt(name string) (int, error) {
	return ParseIntWithValidation(p.flags[name], name)
}

// BoolFlag returns true if the boolean flag was set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[name]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index >= len(p.positional) {
		return nil
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Raw returns the original arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// VALUE PARSING HELPERS
// =============================================================================

// ParseIntWithValidation parses s as an int, naming the field in errors.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, NewUsageError(fmt.Sprintf("%s: value is empty", fieldName), "--"+fieldName+" 16")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewUsageError(fmt.Sprintf("%s: '%s' is not a number", fieldName, s), "--"+fieldName+" 16")
	}
	return n, nil
}

// ParseBoolString accepts true/false, yes/no, on/off and 1/0.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean '%s'", s)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
