// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestRunnerMode_IsValid(t *testing.T) {
	tests := []struct {
		mode  RunnerMode
		valid bool
	}{
		{RunnerNative, true},
		{RunnerVirtual, true},
		{RunnerMode(""), false},
		{RunnerMode("container"), false},
		{RunnerMode("NATIVE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			valid, errs := tt.mode.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v, want %v", valid, tt.valid)
			}
			if !tt.valid {
				if len(errs) != 1 {
					t.Fatalf("expected one validation error, got %d", len(errs))
				}
				if !errors.Is(errs[0], ErrInvalidRunnerMode) {
					t.Errorf("error should wrap ErrInvalidRunnerMode: %v", errs[0])
				}
			}
		})
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, _ := cs.IsValid(); !valid {
			t.Errorf("%q should be valid", cs)
		}
	}
	if valid, errs := ColorScheme("neon").IsValid(); valid {
		t.Error("unknown color scheme should be invalid")
	} else if !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("error should wrap ErrInvalidColorScheme: %v", errs[0])
	}
}

func TestWorkdirPath_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		path  WorkdirPath
		valid bool
	}{
		{"empty is valid", "", true},
		{"regular path", "/tmp/work", true},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := tt.path.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid() = %v, want %v", valid, tt.valid)
			}
			if !tt.valid && !errors.Is(errs[0], ErrInvalidWorkdirPath) {
				t.Errorf("error should wrap ErrInvalidWorkdirPath: %v", errs[0])
			}
		})
	}
}

func TestStoreConfig_IsValid(t *testing.T) {
	if valid, _ := (StoreConfig{MaxWords: 0}).IsValid(); !valid {
		t.Error("zero max_words should be valid (uncapped)")
	}
	if valid, _ := (StoreConfig{MaxWords: 1024}).IsValid(); !valid {
		t.Error("positive max_words should be valid")
	}
	valid, errs := StoreConfig{MaxWords: -1}.IsValid()
	if valid {
		t.Error("negative max_words should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidStoreConfig) {
		t.Errorf("error should wrap ErrInvalidStoreConfig: %v", errs[0])
	}
}

func TestConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if valid, errs := cfg.IsValid(); !valid {
		t.Fatalf("default config should be valid: %v", errs)
	}

	bad := DefaultConfig()
	bad.Runner = "container"
	bad.Store.MaxWords = -5
	valid, errs := bad.IsValid()
	if valid {
		t.Fatal("config with bad runner and store should be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("expected a single aggregate error, got %d", len(errs))
	}
	var aggregate *InvalidConfigError
	if !errors.As(errs[0], &aggregate) {
		t.Fatalf("expected InvalidConfigError, got %T", errs[0])
	}
	if len(aggregate.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(aggregate.FieldErrors))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("aggregate should wrap ErrInvalidConfig")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Runner != RunnerNative {
		t.Errorf("Runner = %q, want %q", cfg.Runner, RunnerNative)
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
	if cfg.DebugFrames {
		t.Error("DebugFrames should default to false")
	}
	if cfg.Store.MaxWords != 0 {
		t.Errorf("Store.MaxWords = %d, want 0", cfg.Store.MaxWords)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
}
