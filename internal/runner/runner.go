// SPDX-License-Identifier: MPL-2.0

// Package runner provides host command execution for the utility bindings.
// Two interchangeable runners exist: native, which spawns real processes,
// and virtual, which interprets commands in-process with mvdan/sh.
package runner

import (
	"context"
	"io"
)

// Runner mode names.
const (
	// ModeNative runs host utilities as real processes via os/exec.
	ModeNative Mode = "native"
	// ModeVirtual runs host utilities in the embedded mvdan/sh interpreter.
	ModeVirtual Mode = "virtual"
)

type (
	// Mode selects a runner implementation by name.
	Mode string

	// Invocation describes a single host command to run: one utility with
	// its arguments, not a shell script.
	Invocation struct {
		// Context is the Go context for cancellation. Nil means Background.
		Context context.Context
		// Command is the utility name (e.g. "ls").
		Command string
		// Args are the utility arguments.
		Args []string
		// Dir is the working directory. Empty means the process default.
		Dir string
		// Env is the environment as KEY=VALUE pairs. Nil inherits.
		Env []string
		// Stdin is the command's standard input. Nil means no input.
		Stdin io.Reader
		// Stdout receives standard output when the invocation streams
		// rather than captures. Nil discards.
		Stdout io.Writer
		// Stderr receives standard error. Nil discards.
		Stderr io.Writer
	}

	// Result is the outcome of a host command invocation.
	Result struct {
		// ExitCode is the command's exit status.
		ExitCode ExitCode
		// Error is an infrastructure failure (command could not run at
		// all), never a plain nonzero exit.
		Error error
		// Output is captured stdout, only for capturing calls.
		Output string
		// ErrOutput is captured stderr, only for capturing calls.
		ErrOutput string
	}

	// Runner executes host commands on behalf of the utility bindings.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available reports whether this runner can execute on the
		// current system.
		Available() bool
		// Run executes the invocation, streaming output to the
		// invocation's writers.
		Run(inv *Invocation) *Result
		// RunCapture executes the invocation and captures stdout/stderr
		// into the result.
		RunCapture(inv *Invocation) *Result
	}
)

// IsValid returns whether the Mode is a known runner mode, and a list of
// validation errors if it is not.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeNative, ModeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidModeError{Value: m}}
	}
}

// ctx returns the invocation context, defaulting to Background.
func (inv *Invocation) ctx() context.Context {
	if inv.Context != nil {
		return inv.Context
	}
	return context.Background()
}
