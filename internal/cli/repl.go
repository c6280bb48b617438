// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive formatting session.
//
// Command: repl
// Short:   Format lines interactively against a fixed buffer
//
// Each input line is a template followed by its arguments, split on
// whitespace with double quotes grouping words:
//
//   stackfmt> "Hello {}" 42
//   Hello42
//
// Session commands:
//   :size N             Change the buffer size
//   :engine NAME        template or printf
//   :normalize FORM     none, nfc, nfd, nfkc, nfkd
//   :config             Show the effective settings
//   :help               Show this list
//   :quit               Leave (Ctrl+D and Ctrl+C also work)
//
// The config file is watched while the session runs. Edits to it are
// applied on the fly, with command-line flags still taking precedence.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/peterh/liner"

	"github.com/jeranaias/stackfmt/internal/config"
)

const replHelp = `Enter a template followed by its arguments, e.g.  "Hello {}" 42
  :size N          buffer size in bytes
  :engine NAME     template or printf
  :normalize FORM  none, nfc, nfd, nfkc, nfkd
  :config          show settings
  :quit            leave`

// =============================================================================
// SESSION
// =============================================================================

// ReplSession holds the settings of an interactive session. The config may
// be replaced by the file watcher while lines are being formatted.
type ReplSession struct {
	mu     sync.Mutex
	outMu  sync.Mutex
	cfg    *config.Config
	args   Args
	path   string
	width  int
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

// NewReplSession creates a session starting from cfg. args holds the
// command-line overrides that survive config reloads.
func NewReplSession(cfg *config.Config, args Args, env Env, logger *log.Logger) *ReplSession {
	s := &ReplSession{
		cfg:    cfg.Clone(),
		args:   args,
		width:  env.TermWidth,
		logger: logger,
	}
	// The config watcher reports reload errors from its own goroutine.
	s.out = &lockedWriter{mu: &s.outMu, w: env.Stdout}
	s.errOut = &lockedWriter{mu: &s.outMu, w: env.Stderr}
	return s
}

// lockedWriter serializes writes to w under a mutex that may be shared
// with other writers.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// Config returns a copy of the current settings.
func (s *ReplSession) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// HandleLine processes one line of input. It returns false when the
// session should end.
func (s *ReplSession) HandleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	if strings.HasPrefix(line, ":") {
		return s.handleCommand(line)
	}

	words, err := splitWords(line)
	if err != nil {
		s.printError(err)
		return true
	}

	cfg := s.Config()
	data, err := Render(cfg, words[0], words[1:], s.width)
	if err != nil {
		s.printError(err)
		return true
	}
	fmt.Fprintln(s.out, data.Output)
	if data.Truncated && cfg.Output.ShowTruncation {
		printTruncationNotice(s.errOut, data)
	}
	return true
}

func (s *ReplSession) handleCommand(line string) bool {
	fields := strings.Fields(line)
	name, rest := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case ":q", ":quit", ":exit":
		return false
	case ":h", ":help":
		fmt.Fprintln(s.out, replHelp)
	case ":config":
		printConfig(s.out, s.Config(), s.path)
	case ":size", ":engine", ":normalize":
		if len(rest) != 1 {
			s.printError(fmt.Errorf("%s takes exactly one value", name))
			return true
		}
		if err := s.set(name[1:], rest[0]); err != nil {
			s.printError(err)
		}
	default:
		msg := "unknown command " + name
		if guess := closest(name, replCommands); guess != "" {
			msg += ", did you mean " + guess + "?"
		}
		s.printError(errors.New(msg + " Try :help"))
	}
	return true
}

// set changes one setting and pins it so config reloads keep it.
func (s *ReplSession) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg.Clone()
	pinned := s.args
	switch key {
	case "size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("size: '%s' is not a number", value)
		}
		next.Buffer.Size = n
		pinned.Size = n
	case "engine":
		next.Format.Engine = value
		pinned.Engine = value
	case "normalize":
		next.Output.Normalize = value
		pinned.Normalize = value
	}

	next.SetDefaults()
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg = next
	s.args = pinned
	s.logger.Printf("%s set to %s", key, value)
	return nil
}

// Reload re-reads the config file and applies the session overrides on
// top. The current settings are kept when the file is invalid.
func (s *ReplSession) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, err := config.Read(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applyOverrides(cfg, s.args)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.logger.Printf("reloaded %s", s.path)
	return nil
}

func (s *ReplSession) printError(err error) {
	fmt.Fprintf(s.errOut, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
}

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// WatchConfig reloads the session whenever the config file at path is
// written. The directory is watched so editors that save by rename are
// seen too. Watching stops when ctx is done.
func (s *ReplSession) WatchConfig(ctx context.Context, path string) error {
	s.path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create {
					if err := s.Reload(); err != nil {
						s.printError(fmt.Errorf("config reload: %w", err))
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Printf("watcher: %v", err)
			}
		}
	}()
	return nil
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleRepl runs the interactive session. Line editing and history are
// used when attached to a terminal; otherwise lines are read from stdin.
func HandleRepl(cfg *config.Config, args Args, env Env, logger *log.Logger) error {
	session := NewReplSession(cfg, args, env, logger)

	path, err := configPathFor(args)
	if err == nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := session.WatchConfig(ctx, path); err != nil {
			logger.Printf("not watching %s: %v", path, err)
		}
	}

	if !env.Interactive {
		return runScript(session, env.Stdin)
	}
	return runInteractive(session)
}

func runScript(session *ReplSession, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !session.HandleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func runInteractive(session *ReplSession) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	historyFile := replHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyFile)

	fmt.Fprintln(session.out, "Type :help for commands, :quit to leave.")
	for {
		input, err := line.Prompt(PromptStyle.Render("stackfmt> "))
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed terminal all end the session
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintln(session.out)
			return nil
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !session.HandleLine(input) {
			return nil
		}
	}
}

func replHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "repl_history")
}

// saveHistory persists history with owner-only permissions.
func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

// =============================================================================
// HELPERS
// =============================================================================

// applyOverrides layers command-line settings over a loaded config.
func applyOverrides(cfg *config.Config, args Args) {
	if args.Size >= 0 {
		cfg.Buffer.Size = args.Size
	}
	if args.Engine != "" {
		cfg.Format.Engine = args.Engine
	}
	if args.Normalize != "" {
		cfg.Output.Normalize = args.Normalize
	}
	if args.Fit {
		cfg.Output.FitTerminal = true
	}
	if args.Quiet {
		cfg.Output.ShowTruncation = false
	}
}

// splitWords splits a line on whitespace. Double quotes group words and
// a backslash escapes the next character inside or outside quotes.
func splitWords(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quoted  bool
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped, inWord = true, true
		case r == '"':
			quoted, inWord = !quoted, true
		case !quoted && (r == ' ' || r == '\t'):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if escaped {
		current.WriteByte('\\')
	}
	if inWord {
		words = append(words, current.String())
	}
	if len(words) == 0 {
		return nil, errors.New("missing template")
	}
	return words, nil
}
