// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for stackfmt.
//
// Command: config [subcommand]
// Short:   View and create the configuration file
//
// Subcommands:
//   show (default)      Display the effective configuration (file, env and flags)
//   init                Write a config file with default values
//   path                Show configuration file path
//
// Examples:
//   stackfmt config                       Show current config (default)
//   stackfmt config show --json           Config in JSON format
//   stackfmt config init                  Create ~/.stackfmt/config.toml
//   stackfmt --config ./sf.toml config init
//   stackfmt config path                  Show config file location
//
// Configuration Keys:
//   buffer.size           Buffer length in bytes (0-65536)
//   format.engine         template or printf
//   output.normalize      none, nfc, nfd, nfkc, nfkd
//   output.fit_terminal   Clip output to terminal width (true/false)
//   output.show_truncation Print a notice when output was cut (true/false)

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jeranaias/stackfmt/internal/config"
)

// HandleConfig handles the config command.
func HandleConfig(args Args, env Env) error {
	path, err := configPathFor(args)
	if err != nil {
		return &CommandError{Command: "config", Reason: "cannot locate config file", Err: err}
	}

	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		return showConfig(args, env, path)
	case "init":
		return initConfig(args, env, path)
	case "path":
		return OutputJSON(env.Stdout, args.JSON, "config path", func() (interface{}, error) {
			if !args.JSON {
				fmt.Fprintln(env.Stdout, path)
			}
			return ConfigData{Path: path}, nil
		})
	default:
		return NewUsageError(fmt.Sprintf("unknown config subcommand: %s", args.Subcommand), "stackfmt config show")
	}
}

func configPathFor(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPath()
}

func showConfig(args Args, env Env, path string) error {
	cfg, err := resolveConfig(args, log.New(io.Discard, "", 0))
	if err != nil {
		return err
	}

	return OutputJSON(env.Stdout, args.JSON, "config show", func() (interface{}, error) {
		if !args.JSON {
			printConfig(env.Stdout, cfg, path)
		}
		return ConfigData{Path: path, Config: cfg}, nil
	})
}

func printConfig(w io.Writer, cfg *config.Config, path string) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%s%s\n", LabelStyle.Render(label), ValueStyle.Render(value))
	}
	row("config file", path)
	row("buffer.size", strconv.Itoa(cfg.Buffer.Size))
	row("format.engine", cfg.Format.Engine)
	row("output.normalize", cfg.Output.Normalize)
	row("fit_terminal", strconv.FormatBool(cfg.Output.FitTerminal))
	row("show_truncation", strconv.FormatBool(cfg.Output.ShowTruncation))
}

func initConfig(args Args, env Env, path string) error {
	if _, err := os.Stat(path); err == nil {
		return &CommandError{Command: "config init", Reason: "config file already exists", Err: errors.New(path)}
	}
	if err := config.Save(config.Default(), path); err != nil {
		return &CommandError{Command: "config init", Reason: "cannot write config file", Err: err}
	}
	return OutputJSON(env.Stdout, args.JSON, "config init", func() (interface{}, error) {
		if !args.JSON {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", path)
		}
		return ConfigData{Path: path, Config: config.Default()}, nil
	})
}
