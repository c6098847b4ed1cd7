// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// NativeRunner executes host utilities as real processes.
type NativeRunner struct{}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return string(ModeNative)
}

// Available returns whether this runner is available. The native runner
// only needs a working os/exec, so it always is; individual utilities may
// still be missing, which surfaces per invocation.
func (r *NativeRunner) Available() bool {
	return true
}

// Run executes the invocation, streaming output to the invocation writers.
func (r *NativeRunner) Run(inv *Invocation) *Result {
	cmd := r.command(inv)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	return r.wait(cmd.Run(), &Result{})
}

// RunCapture executes the invocation and captures stdout/stderr.
func (r *NativeRunner) RunCapture(inv *Invocation) *Result {
	cmd := r.command(inv)
	cmd.Stdin = inv.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := r.wait(cmd.Run(), &Result{})
	res.Output = stdout.String()
	res.ErrOutput = stderr.String()
	return res
}

func (r *NativeRunner) command(inv *Invocation) *exec.Cmd {
	//nolint:gosec // G204: executing host utilities is this runner's purpose
	cmd := exec.CommandContext(inv.ctx(), inv.Command, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	if inv.Env != nil {
		cmd.Env = inv.Env
	}
	return cmd
}

func (r *NativeRunner) wait(err error, res *Result) *Result {
	if err == nil {
		return res
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = ExitCode(exitErr.ExitCode())
		return res
	}
	res.ExitCode = 1
	res.Error = fmt.Errorf("failed to execute command: %w", err)
	return res
}
