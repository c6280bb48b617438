// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// stackfmt command.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/stackfmt/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete stackfmt configuration.
type Config struct {
	Buffer BufferConfig `toml:"buffer" json:"buffer"`
	Format FormatConfig `toml:"format" json:"format"`
	Output OutputConfig `toml:"output" json:"output"`
}

// BufferConfig controls the fixed output buffer.
type BufferConfig struct {
	// Size is the buffer length in bytes. Zero is valid and always yields "".
	Size int `toml:"size" json:"size"`
}

// FormatConfig selects the formatting engine.
type FormatConfig struct {
	// Engine is "template" (brace placeholders) or "printf" (fmt verbs).
	Engine string `toml:"engine" json:"engine"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Normalize is the Unicode form applied to arguments: none, nfc, nfd, nfkc, nfkd.
	Normalize string `toml:"normalize" json:"normalize"`
	// FitTerminal also clips the result to the terminal's display width.
	FitTerminal bool `toml:"fit_terminal" json:"fit_terminal"`
	// ShowTruncation prints a notice on stderr when output was cut.
	ShowTruncation bool `toml:"show_truncation" json:"show_truncation"`
}

const (
	// DefaultBufferSize is used when no size is configured.
	DefaultBufferSize = 64
	// MaxBufferSize bounds buffer.size.
	MaxBufferSize = 64 * 1024

	EngineTemplate = "template"
	EnginePrintf   = "printf"
)

// Default returns a Config with all defaults filled in.
func Default() *Config {
	return &Config{
		Buffer: BufferConfig{Size: DefaultBufferSize},
		Format: FormatConfig{Engine: EngineTemplate},
		Output: OutputConfig{
			Normalize:      "none",
			FitTerminal:    false,
			ShowTruncation: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the stackfmt configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".stackfmt"), nil
}

// ConfigPath returns the config file path. STACKFMT_CONFIG overrides the
// default ~/.stackfmt/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv("STACKFMT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file if it exists, falls back to defaults if it
// does not, then applies environment overrides and validates.
func Load() (*Config, error) {
	return LoadFromPath("")
}

// LoadFromPath is Load for a specific file. An empty path means the
// default location, which may be absent.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read layers defaults, the config file and environment overrides without
// validating, so callers can apply higher-precedence settings first. An
// empty path means ConfigPath, which may be absent. Files ending in .json
// are decoded as JSON, everything else as TOML. Keys missing from the file
// keep their defaults.
func Read(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err == nil {
			_, statErr := os.Stat(p)
			switch {
			case statErr == nil:
				path = p
			case !errors.Is(statErr, os.ErrNotExist):
				return nil, fmt.Errorf("failed to stat config file: %w", statErr)
			}
		}
	}

	cfg := Default()
	if path != "" {
		var err error
		if strings.HasSuffix(path, ".json") {
			err = LoadJSON(cfg, path)
		} else {
			err = LoadTOML(cfg, path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg as TOML to path atomically.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# stackfmt configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders cfg as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate returns every problem found in c, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Buffer.Size < 0 || c.Buffer.Size > MaxBufferSize {
		errs = append(errs, ValidationError{
			Field:   "buffer.size",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxBufferSize, c.Buffer.Size),
		})
	}

	switch strings.ToLower(c.Format.Engine) {
	case EngineTemplate, EnginePrintf:
	default:
		errs = append(errs, ValidationError{
			Field:   "format.engine",
			Message: fmt.Sprintf("invalid engine '%s', must be one of: template, printf", c.Format.Engine),
		})
	}

	if !util.IsNormalizationForm(c.Output.Normalize) {
		errs = append(errs, ValidationError{
			Field: "output.normalize",
			Message: fmt.Sprintf("invalid form '%s', must be one of: %s",
				c.Output.Normalize, strings.Join(util.NormalizationForms, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string settings and lower-cases enum values.
func (c *Config) SetDefaults() {
	c.Format.Engine = strings.ToLower(c.Format.Engine)
	if c.Format.Engine == "" {
		c.Format.Engine = EngineTemplate
	}
	c.Output.Normalize = strings.ToLower(c.Output.Normalize)
	if c.Output.Normalize == "" {
		c.Output.Normalize = "none"
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - STACKFMT_BUFFER_SIZE: overrides buffer.size
//   - STACKFMT_ENGINE: overrides format.engine
//   - STACKFMT_NORMALIZE: overrides output.normalize
//
// A non-numeric STACKFMT_BUFFER_SIZE is stored as -1 so Validate rejects it.
func (c *Config) ApplyEnvOverrides() {
	if size := os.Getenv("STACKFMT_BUFFER_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			n = -1
		}
		c.Buffer.Size = n
	}
	if engine := os.Getenv("STACKFMT_ENGINE"); engine != "" {
		c.Format.Engine = engine
	}
	if form := os.Getenv("STACKFMT_NORMALIZE"); form != "" {
		c.Output.Normalize = form
	}
	c.SetDefaults()
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
