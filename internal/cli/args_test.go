// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"fmt"},
			wantSub: "fmt",
		},
		{
			name:    "value flag before command",
			args:    []string{"--size", "6", "fmt", "Hello{}", "42"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("size") != "6" {
					t.Errorf("Flag(size) = %q, want %q", p.Flag("size"), "6")
				}
				if p.PositionalCount() != 3 {
					t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"fmt", "--engine=printf", "%d", "1"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("engine") != "printf" {
					t.Errorf("Flag(engine) = %q, want %q", p.Flag("engine"), "printf")
				}
			},
		},
		{
			name:    "boolean flag does not take a value",
			args:    []string{"fmt", "--quiet", "Hello{}", "42"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("quiet") {
					t.Error("BoolFlag(quiet) should be true")
				}
				if p.Positional(1) != "Hello{}" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "Hello{}")
				}
			},
		},
		{
			name:    "short aliases",
			args:    []string{"-s", "4", "-q", "fmt"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("size") != "4" {
					t.Errorf("Flag(size) = %q, want %q", p.Flag("size"), "4")
				}
				if !p.BoolFlag("quiet") {
					t.Error("-q should set quiet")
				}
			},
		},
		{
			name:    "negative numbers are positional",
			args:    []string{"fmt", "{}", "-7", "-2.5"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(2) != "-7" || p.Positional(3) != "-2.5" {
					t.Errorf("positional = %v", p.PositionalFrom(0))
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"fmt", "--", "--quiet", "-x"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("quiet") {
					t.Error("--quiet after -- should be positional")
				}
				if p.Positional(1) != "--quiet" || p.Positional(2) != "-x" {
					t.Errorf("positional = %v", p.PositionalFrom(0))
				}
			},
		},
		{
			name:    "single dash is positional",
			args:    []string{"fmt", "-"},
			wantSub: "fmt",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(1) != "-" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "-")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewArgParser(tt.args, globalFlags)
			if err != nil {
				t.Fatalf("NewArgParser(%v) error = %v", tt.args, err)
			}
			if got := p.Positional(0); got != tt.wantSub {
				t.Errorf("Positional(0) = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown long flag", []string{"--bogus", "fmt"}},
		{"unknown short flag", []string{"-z"}},
		{"value flag without value", []string{"fmt", "--size"}},
		{"bad boolean value", []string{"--quiet=maybe", "fmt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArgParser(tt.args, globalFlags)
			if err == nil {
				t.Fatalf("NewArgParser(%v) should error", tt.args)
			}
			var usageErr *UsageError
			if !errors.As(err, &usageErr) {
				t.Errorf("error = %T, want *UsageError", err)
			}
		})
	}
}

func TestArgParser_BoolWithValue(t *testing.T) {
	p, err := NewArgParser([]string{"--fit=false", "--json=yes"}, globalFlags)
	if err != nil {
		t.Fatalf("NewArgParser error = %v", err)
	}
	if p.BoolFlag("fit") {
		t.Error("--fit=false should be false")
	}
	if !p.BoolFlag("json") {
		t.Error("--json=yes should be true")
	}
}

func TestArgParser_HasFlag(t *testing.T) {
	p, err := NewArgParser([]string{"--size", "0"}, globalFlags)
	if err != nil {
		t.Fatalf("NewArgParser error = %v", err)
	}
	if !p.HasFlag("size") {
		t.Error("HasFlag(size) should be true for --size 0")
	}
	if p.HasFlag("engine") {
		t.Error("HasFlag(engine) should be false")
	}
}

func TestArgParser_EmptyArgs(t *testing.T) {
	p, err := NewArgParser(nil, globalFlags)
	if err != nil {
		t.Fatalf("NewArgParser error = %v", err)
	}
	if p.PositionalCount() != 0 {
		t.Errorf("PositionalCount() = %d, want 0", p.PositionalCount())
	}
	if p.Positional(0) != "" {
		t.Errorf("Positional(0) = %q, want empty", p.Positional(0))
	}
	if p.PositionalFrom(1) != nil {
		t.Errorf("PositionalFrom(1) = %v, want nil", p.PositionalFrom(1))
	}
}

// =============================================================================
// VALUE PARSING TESTS
// =============================================================================

func TestParseBoolString(t *testing.T) {
	trueValues := []string{"true", "TRUE", "True", "yes", "YES", "1", "on", "ON"}
	falseValues := []string{"false", "FALSE", "False", "no", "NO", "0", "off", "OFF"}

	for _, v := range trueValues {
		t.Run("true_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if !got {
				t.Errorf("ParseBoolString(%q) = false, want true", v)
			}
		})
	}

	for _, v := range falseValues {
		t.Run("false_"+v, func(t *testing.T) {
			got, err := ParseBoolString(v)
			if err != nil {
				t.Errorf("ParseBoolString(%q) error = %v", v, err)
			}
			if got {
				t.Errorf("ParseBoolString(%q) = true, want false", v)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseBoolString("maybe")
		if err == nil {
			t.Error("ParseBoolString(maybe) should error")
		}
	})
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"positive", "42", 42, false},
		{"zero", "0", 0, false},
		{"negative", "-5", -5, false},
		{"empty", "", 0, true},
		{"non-numeric", "abc", 0, true},
		{"float", "1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntWithValidation(tt.input, "size")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseIntWithValidation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseIntWithValidation(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no arguments shows help",
			args:        nil,
			wantCommand: CmdHelp,
		},
		{
			name:        "fmt with template and args",
			args:        []string{"fmt", "Hello{}", "42"},
			wantCommand: CmdFmt,
			validate: func(t *testing.T, a Args) {
				if len(a.Rest) != 2 || a.Rest[0] != "Hello{}" {
					t.Errorf("Rest = %v", a.Rest)
				}
				if a.Size != -1 {
					t.Errorf("Size = %d, want -1 when not given", a.Size)
				}
			},
		},
		{
			name:        "format alias",
			args:        []string{"FORMAT", "x"},
			wantCommand: CmdFmt,
		},
		{
			name:        "global flags",
			args:        []string{"--size", "16", "--normalize", "nfc", "--fit", "--json", "-v", "printf", "%d", "1"},
			wantCommand: CmdPrintf,
			validate: func(t *testing.T, a Args) {
				if a.Size != 16 || a.Normalize != "nfc" || !a.Fit || !a.JSON || !a.Verbose {
					t.Errorf("Args = %+v", a)
				}
			},
		},
		{
			name:        "config subcommand",
			args:        []string{"config", "init"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "init" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "init")
				}
			},
		},
		{
			name:        "boundary",
			args:        []string{"boundary", "3", "ä€"},
			wantCommand: CmdBoundary,
		},
		{
			name:        "repl",
			args:        []string{"repl"},
			wantCommand: CmdRepl,
		},
		{
			name:        "version",
			args:        []string{"version"},
			wantCommand: CmdVersion,
		},
		{
			name:        "help flag wins",
			args:        []string{"--help", "fmt", "x"},
			wantCommand: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if cmd != tt.wantCommand {
				t.Errorf("Parse(%v) command = %v, want %v", tt.args, cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"negative size", []string{"--size", "-1", "fmt", "x"}},
		{"non-numeric size", []string{"--size", "big", "fmt", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.args)
			if err == nil {
				t.Fatalf("Parse(%v) should error", tt.args)
			}
			if code := ExitCodeFor(err); code != ExitUsageError {
				t.Errorf("ExitCodeFor = %d, want %d", code, ExitUsageError)
			}
		})
	}
}
