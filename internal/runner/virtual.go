// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes host utilities through the embedded mvdan/sh
// interpreter. Shell builtins (echo, printf, pwd, test, ...) run fully
// in-process; other utilities are spawned by the interpreter's exec
// handler. Unlike the native runner it needs no system shell and applies
// POSIX word semantics identically on every platform.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return string(ModeVirtual)
}

// Available returns whether this runner is available. The virtual runner
// is built in, so it always is.
func (r *VirtualRunner) Available() bool {
	return true
}

// Run executes the invocation, streaming output to the invocation writers.
func (r *VirtualRunner) Run(inv *Invocation) *Result {
	return r.run(inv, inv.Stdout, inv.Stderr)
}

// RunCapture executes the invocation and captures stdout/stderr.
func (r *VirtualRunner) RunCapture(inv *Invocation) *Result {
	var stdout, stderr bytes.Buffer
	res := r.run(inv, &stdout, &stderr)
	res.Output = stdout.String()
	res.ErrOutput = stderr.String()
	return res
}

func (r *VirtualRunner) run(inv *Invocation, stdout, stderr io.Writer) *Result {
	script, err := quoteCall(inv.Command, inv.Args)
	if err != nil {
		return NewErrorResult(1, err)
	}

	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(script), inv.Command)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse invocation: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.StdIO(inv.Stdin, stdout, stderr),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}
	if inv.Env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(inv.Env...)))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(inv.ctx(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("invocation failed: %w", err))
	}

	return NewSuccessResult()
}

// quoteCall renders a single command call as shell source, quoting each
// word so arguments pass through the interpreter verbatim.
func quoteCall(command string, args []string) (string, error) {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{command}, args...) {
		q, err := syntax.Quote(w, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("cannot quote %q: %w", w, err)
		}
		words = append(words, q)
	}
	return strings.Join(words, " "), nil
}
