// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config lookup at an empty temp directory and clears
// every STACKFMT_* override for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv("STACKFMT_CONFIG", "")
	t.Setenv("STACKFMT_BUFFER_SIZE", "")
	t.Setenv("STACKFMT_ENGINE", "")
	t.Setenv("STACKFMT_NORMALIZE", "")
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Buffer.Size != DefaultBufferSize {
		t.Errorf("Buffer.Size = %d, want %d", cfg.Buffer.Size, DefaultBufferSize)
	}
	if cfg.Format.Engine != EngineTemplate {
		t.Errorf("Format.Engine = %q, want %q", cfg.Format.Engine, EngineTemplate)
	}
	if !cfg.Output.ShowTruncation {
		t.Error("ShowTruncation should default to true")
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Buffer.Size != DefaultBufferSize {
		t.Errorf("Buffer.Size = %d, want default", cfg.Buffer.Size)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ".stackfmt", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	data := "[buffer]\nsize = 16\n\n[format]\nengine = \"PRINTF\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Buffer.Size != 16 {
		t.Errorf("Buffer.Size = %d, want 16", cfg.Buffer.Size)
	}
	if cfg.Format.Engine != EnginePrintf {
		t.Errorf("Format.Engine = %q, want printf (lower-cased)", cfg.Format.Engine)
	}
	// Keys absent from the file keep their defaults.
	if !cfg.Output.ShowTruncation {
		t.Error("ShowTruncation lost its default")
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"buffer":{"size":8},"output":{"normalize":"nfc"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Buffer.Size != 8 || cfg.Output.Normalize != "nfc" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[buffer]\nsizee = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "buffer.sizee") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[buffer]\nsize = -4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidateErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "buffer.size" {
		t.Errorf("unexpected validation errors: %v", verrs)
	}
}

func TestRead_LeavesValidationToCaller(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[buffer]\nsize = 999999\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if cfg.Buffer.Size != 999999 {
		t.Errorf("Buffer.Size = %d, want 999999", cfg.Buffer.Size)
	}

	cfg.Buffer.Size = 16
	if err := cfg.Validate(); err != nil {
		t.Errorf("overridden config should be valid: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath should reject the file as written")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Buffer: BufferConfig{Size: MaxBufferSize + 1},
		Format: FormatConfig{Engine: "jinja"},
		Output: OutputConfig{Normalize: "utf16"},
	}

	err := cfg.Validate()
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidateErrors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(verrs), verrs)
	}
	for _, field := range []string{"buffer.size", "format.engine", "output.normalize"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err.Error(), field)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STACKFMT_BUFFER_SIZE", "4")
	t.Setenv("STACKFMT_ENGINE", "Printf")
	t.Setenv("STACKFMT_NORMALIZE", "NFKC")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Buffer.Size != 4 {
		t.Errorf("Buffer.Size = %d, want 4", cfg.Buffer.Size)
	}
	if cfg.Format.Engine != EnginePrintf {
		t.Errorf("Format.Engine = %q, want printf", cfg.Format.Engine)
	}
	if cfg.Output.Normalize != "nfkc" {
		t.Errorf("Output.Normalize = %q, want nfkc", cfg.Output.Normalize)
	}
}

func TestApplyEnvOverrides_BadSizeFailsValidation(t *testing.T) {
	isolate(t)
	t.Setenv("STACKFMT_BUFFER_SIZE", "lots")

	_, err := Load()
	if err == nil {
		t.Fatal("expected Load to reject non-numeric STACKFMT_BUFFER_SIZE")
	}
}

func TestConfigPath_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("STACKFMT_CONFIG", "/tmp/elsewhere.toml")

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/elsewhere.toml" {
		t.Errorf("ConfigPath = %q", path)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Buffer.Size = 12
	cfg.Output.FitTerminal = true
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Buffer.Size = 1
	if cfg.Buffer.Size == 1 {
		t.Error("Clone shares state with original")
	}
}
