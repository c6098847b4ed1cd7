// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RunnerNative spawns host utilities as real processes.
	// Defined locally to avoid coupling config to internal/runner;
	// the CLI casts to runner.Mode at the boundary.
	RunnerNative RunnerMode = "native"
	// RunnerVirtual serves shell builtins from the embedded mvdan/sh
	// interpreter and spawns the rest.
	RunnerVirtual RunnerMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidRunnerMode is returned when a RunnerMode value is not recognized.
	ErrInvalidRunnerMode = errors.New("invalid runner mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidWorkdirPath is returned when a WorkdirPath value is whitespace-only.
	ErrInvalidWorkdirPath = errors.New("invalid workdir path")
	// ErrInvalidStoreConfig is the sentinel error wrapped by InvalidStoreConfigError.
	ErrInvalidStoreConfig = errors.New("invalid store config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RunnerMode specifies how host utility bindings execute commands.
	RunnerMode string

	// InvalidRunnerModeError is returned when a RunnerMode value is not recognized.
	// It wraps ErrInvalidRunnerMode for errors.Is() compatibility.
	InvalidRunnerModeError struct {
		Value RunnerMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// WorkdirPath represents the working directory translated programs run in.
	// The zero value ("") is valid and means "use the current directory".
	// Non-zero values must not be whitespace-only.
	WorkdirPath string

	// InvalidWorkdirPathError is returned when a WorkdirPath value is
	// non-empty but whitespace-only. It wraps ErrInvalidWorkdirPath for errors.Is().
	InvalidWorkdirPathError struct {
		Value WorkdirPath
	}

	// InvalidStoreConfigError is returned when a StoreConfig has invalid fields.
	// It wraps ErrInvalidStoreConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidStoreConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Runner selects how host utility bindings execute commands.
		Runner RunnerMode `toml:"runner" mapstructure:"runner"`
		// Strict starts programs in strict failure mode.
		Strict bool `toml:"strict" mapstructure:"strict"`
		// DebugFrames enables shadow tracking of the save/restore protocol.
		DebugFrames bool `toml:"debug_frames" mapstructure:"debug_frames"`
		// Workdir sets the working directory for programs and their utilities.
		Workdir WorkdirPath `toml:"workdir" mapstructure:"workdir"`
		// Store configures the word store.
		Store StoreConfig `toml:"store" mapstructure:"store"`
		// UI configures the user interface.
		UI UIConfig `toml:"ui" mapstructure:"ui"`
	}

	// StoreConfig configures the word store.
	StoreConfig struct {
		// MaxWords caps the store size. Zero means the full addressable range.
		MaxWords int64 `toml:"max_words" mapstructure:"max_words"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `toml:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidRunnerModeError.
func (e *InvalidRunnerModeError) Error() string {
	return fmt.Sprintf("invalid runner mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidRunnerModeError) Unwrap() error {
	return ErrInvalidRunnerMode
}

// String returns the string representation of the RunnerMode.
func (m RunnerMode) String() string { return string(m) }

// IsValid returns whether the RunnerMode is one of the defined runner modes,
// and a list of validation errors if it is not.
func (m RunnerMode) IsValid() (bool, []error) {
	switch m {
	case RunnerNative, RunnerVirtual:
		return true, nil
	default:
		return false, []error{&InvalidRunnerModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the WorkdirPath.
func (p WorkdirPath) String() string { return string(p) }

// IsValid returns whether the WorkdirPath is valid.
// The zero value ("") is valid (means "use the current directory").
// Non-zero values must not be whitespace-only.
func (p WorkdirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidWorkdirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWorkdirPathError.
func (e *InvalidWorkdirPathError) Error() string {
	return fmt.Sprintf("invalid workdir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidWorkdirPath for errors.Is() compatibility.
func (e *InvalidWorkdirPathError) Unwrap() error { return ErrInvalidWorkdirPath }

// IsValid returns whether the StoreConfig has valid fields.
// MaxWords must be non-negative; zero means uncapped.
func (c StoreConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxWords < 0 {
		errs = append(errs, fmt.Errorf("store.max_words must be non-negative, got %d", c.MaxWords))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidStoreConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidStoreConfigError.
func (e *InvalidStoreConfigError) Error() string {
	return fmt.Sprintf("invalid store config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidStoreConfig for errors.Is() compatibility.
func (e *InvalidStoreConfigError) Unwrap() error { return ErrInvalidStoreConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Runner.IsValid(), Workdir.IsValid(), Store.IsValid()
// and UI.IsValid(). Bool fields (Strict, DebugFrames) need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Workdir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Store.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Runner:      RunnerNative,
		Strict:      false,
		DebugFrames: false,
		Workdir:     "",
		Store: StoreConfig{
			MaxWords: 0, // full addressable range
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
