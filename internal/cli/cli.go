// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for stackfmt.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/stackfmt/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdFmt
	CmdPrintf
	CmdCheck
	CmdBoundary
	CmdRepl
	CmdConfig
	CmdVersion
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags. Size is -1 when --size was not given.
	Size       int
	Engine     string
	Normalize  string
	ConfigPath string
	Fit        bool
	Quiet      bool
	Verbose    bool
	JSON       bool

	// Command-specific
	Subcommand string
	Rest       []string
}

var globalFlags = FlagSpec{
	Value: []string{"size", "engine", "normalize", "config"},
	Bool:  []string{"fit", "quiet", "verbose", "json", "help"},
	Aliases: map[string]string{
		"s": "size",
		"e": "engine",
		"q": "quiet",
		"v": "verbose",
		"h": "help",
	},
}

const usageText = `stackfmt - format text into a fixed-size buffer without splitting UTF-8

Usage:
  stackfmt [flags] fmt <template> [args...]     Format with {} placeholders
  stackfmt [flags] printf <format> [args...]    Format with fmt verbs (%d, %s, ...)
  stackfmt check <template> [args...]           Validate a {} template without rendering
  stackfmt boundary <max> <text>                Print the safe cut length for text
  stackfmt [flags] repl                         Interactive formatting with history
  stackfmt config [show|init|path]              Configuration
  stackfmt version                              Print version info
  stackfmt help                                 Show this help

Flags:
  -s, --size N          Buffer size in bytes (default from config, 64)
  -e, --engine NAME     template or printf (fmt command only)
      --normalize FORM  Normalize arguments: none, nfc, nfd, nfkc, nfkd
      --fit             Also clip output to the terminal width
      --json            Print the result as JSON
      --config PATH     Config file (default ~/.stackfmt/config.toml)
  -q, --quiet           No truncation notice
  -v, --verbose         Log config resolution and buffer usage to stderr
  --                    End of flags; the rest are template arguments

Templates:
  {}      next argument         {1}   argument 1 (zero based)
  {{ }}   literal braces

Examples:
  stackfmt --size 6 fmt "Hello{}" 42          # Hello4
  stackfmt --size 4 fmt "Add{}" "€"           # Add
  stackfmt printf "%-6s|%4d" id 7
  stackfmt boundary 3 "ä€"                    # 2
`

// Parse parses raw command-line arguments (without the program name).
func Parse(raw []string) (Command, Args, error) {
	parsed := Args{Size: -1}

	p, err := NewArgParser(raw, globalFlags)
	if err != nil {
		return CmdHelp, parsed, err
	}

	if p.HasFlag("size") {
		n, err := p.FlagInt("size")
		if err != nil {
			return CmdHelp, parsed, err
		}
		if n < 0 {
			return CmdHelp, parsed, NewUsageError("--size must not be negative", "--size 16")
		}
		parsed.Size = n
	}
	parsed.Engine = p.Flag("engine")
	parsed.Normalize = p.Flag("normalize")
	parsed.ConfigPath = p.Flag("config")
	parsed.Fit = p.BoolFlag("fit")
	parsed.Quiet = p.BoolFlag("quiet")
	parsed.Verbose = p.BoolFlag("verbose")
	parsed.JSON = p.BoolFlag("json")

	if p.BoolFlag("help") || p.PositionalCount() == 0 {
		return CmdHelp, parsed, nil
	}

	parsed.Rest = p.PositionalFrom(1)

	switch cmd := strings.ToLower(p.Positional(0)); cmd {
	case "fmt", "format":
		return CmdFmt, parsed, nil
	case "printf":
		return CmdPrintf, parsed, nil
	case "check":
		return CmdCheck, parsed, nil
	case "boundary":
		return CmdBoundary, parsed, nil
	case "repl":
		return CmdRepl, parsed, nil
	case "config":
		parsed.Subcommand = p.Positional(1)
		parsed.Rest = p.PositionalFrom(2)
		return CmdConfig, parsed, nil
	case "version":
		return CmdVersion, parsed, nil
	case "help":
		return CmdHelp, parsed, nil
	default:
		return CmdHelp, parsed, unknownCommandError("command", cmd, validCommands)
	}
}

// =============================================================================
// RUN
// =============================================================================

// Env carries the process streams so commands can be driven from tests.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Interactive is true when stdin and stdout are terminals.
	Interactive bool
	// TermWidth is the display width used by --fit.
	TermWidth int
}

// DefaultEnv returns an Env bound to the process streams.
func DefaultEnv() Env {
	return Env{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: IsTTY() && IsStdoutTTY(),
		TermWidth:   GetTerminalWidth(),
	}
}

// Run parses raw, executes the command and returns the exit code.
func Run(raw []string, env Env) int {
	cmd, args, err := Parse(raw)
	if err != nil {
		displayError(env.Stderr, err)
		return ExitCodeFor(err)
	}

	logger := log.New(io.Discard, log.Prefix(), log.Flags())
	if args.Verbose {
		logger.SetOutput(env.Stderr)
	}

	err = dispatch(cmd, args, env, logger)
	if err != nil {
		displayError(env.Stderr, err)
	}
	return ExitCodeFor(err)
}

func dispatch(cmd Command, args Args, env Env, logger *log.Logger) error {
	switch cmd {
	case CmdHelp:
		_, err := io.WriteString(env.Stdout, usageText)
		return err
	case CmdVersion:
		return handleVersion(args, env)
	case CmdCheck:
		return HandleCheck(args, env)
	case CmdBoundary:
		return HandleBoundary(args, env)
	case CmdConfig:
		return HandleConfig(args, env)
	}

	cfg, err := resolveConfig(args, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case CmdFmt:
		return HandleFormat(cfg, args, env, logger)
	case CmdPrintf:
		cfg.Format.Engine = config.EnginePrintf
		return HandleFormat(cfg, args, env, logger)
	case CmdRepl:
		return HandleRepl(cfg, args, env, logger)
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and
// command-line flags, then validates the result once. A bad value in a
// lower layer is fine when a higher layer replaces it.
func resolveConfig(args Args, logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Read(args.ConfigPath)
	if err != nil {
		return nil, &configLoadError{err: err}
	}

	applyOverrides(cfg, args)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Printf("buffer %d bytes, engine %s, normalize %s",
		cfg.Buffer.Size, cfg.Format.Engine, cfg.Output.Normalize)
	return cfg, nil
}

func displayError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

func handleVersion(args Args, env Env) error {
	return OutputJSON(env.Stdout, args.JSON, "version", func() (interface{}, error) {
		if !args.JSON {
			fmt.Fprintf(env.Stdout, "stackfmt %s (commit %s, built %s, %s/%s)\n",
				Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
		}
		return VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}, nil
	})
}
