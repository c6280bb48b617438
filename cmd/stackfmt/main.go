// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the stackfmt command: bounded, UTF-8 safe formatting
// from the shell.
//
// Build with version information:
//
//	go build -ldflags "-X github.com/jeranaias/stackfmt/internal/cli.Version=1.0.0" ./cmd/stackfmt
package main

import (
	"log"
	"os"

	"github.com/jeranaias/stackfmt/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("stackfmt: ")

	os.Exit(cli.Run(os.Args[1:], cli.DefaultEnv()))
}
