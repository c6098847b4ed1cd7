// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"c2sh-runtime/internal/issue"
)

func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty (no file)", path)
	}
	if cfg.Runner != RunnerNative {
		t.Errorf("Runner = %q, want default %q", cfg.Runner, RunnerNative)
	}
	if cfg.Store.MaxWords != 0 {
		t.Errorf("Store.MaxWords = %d, want 0", cfg.Store.MaxWords)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	want := writeTestConfig(t, dir, `
runner = "virtual"
strict = true
debug_frames = true

[store]
max_words = 4096

[ui]
verbose = true
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if cfg.Runner != RunnerVirtual {
		t.Errorf("Runner = %q, want virtual", cfg.Runner)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if !cfg.DebugFrames {
		t.Error("DebugFrames = false, want true")
	}
	if cfg.Store.MaxWords != 4096 {
		t.Errorf("Store.MaxWords = %d, want 4096", cfg.Store.MaxWords)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
	// Keys the file does not set keep their defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want default auto", cfg.UI.ColorScheme)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(`runner = "virtual"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Runner != RunnerVirtual {
		t.Errorf("Runner = %q, want virtual", cfg.Runner)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if !ae.HasSuggestions() {
		t.Error("missing-file error should carry suggestions")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, `runner = [unclosed`)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
}

func TestLoad_InvalidRunnerMode(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, `runner = "container"`)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected validation error for unknown runner mode")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig: %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled: %v", err)
	}
}

func TestGenerateTOML_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner = RunnerVirtual
	cfg.Strict = true
	cfg.Store.MaxWords = 512

	content, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() error: %v", err)
	}
	if !strings.HasPrefix(content, "#") {
		t.Error("generated config should start with a comment header")
	}

	dir := t.TempDir()
	writeTestConfig(t, dir, content)

	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loading generated config failed: %v", err)
	}
	if loaded.Runner != cfg.Runner || loaded.Strict != cfg.Strict || loaded.Store.MaxWords != cfg.Store.MaxWords {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestConfigDir_Override(t *testing.T) {
	t.Cleanup(Reset)

	SetConfigDirOverride("/custom/dir")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if dir != "/custom/dir" {
		t.Errorf("ConfigDir() = %q, want /custom/dir", dir)
	}
}
