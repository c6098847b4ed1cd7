// SPDX-License-Identifier: MPL-2.0

// Package bindings exposes host utilities to translated programs. Each
// binding follows the calling convention: the first parameter is the
// return slot, C strings arrive as word-store addresses, and host command
// status is reported through the slot rather than raised, with strict
// failure mode suspended for the duration of the host invocation.
package bindings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"c2sh-runtime/internal/frame"
	"c2sh-runtime/internal/runner"
	"c2sh-runtime/internal/word"
)

var (
	// ErrBadArity is the sentinel error wrapped by BadArityError.
	ErrBadArity = errors.New("wrong number of arguments")
	// ErrHostCommand is the sentinel error wrapped by HostCommandError.
	ErrHostCommand = errors.New("host command failed")
)

type (
	// Binder holds the pieces a binding needs: the word store for
	// marshalling, a runner for host commands, and the program's standard
	// streams.
	Binder struct {
		store  *word.Store
		run    runner.Runner
		stdin  *bufio.Reader
		stdout io.Writer
		stderr io.Writer
		dir    string
		env    []string
		strict bool
		logger *log.Logger
	}

	// Option configures a Binder at construction time.
	Option func(*Binder)

	// BadArityError is returned when a variadic-by-arity binding receives
	// more optional arguments than it dispatches on. It wraps ErrBadArity
	// for errors.Is() compatibility.
	BadArityError struct {
		Op  string
		Got int
		Max int
	}

	// HostCommandError is returned by Exec when strict failure mode is
	// active and the host command exits nonzero. Bindings themselves never
	// produce it: they suspend strict mode and report status through the
	// return slot instead. It wraps ErrHostCommand for errors.Is()
	// compatibility.
	HostCommandError struct {
		Command  string
		ExitCode runner.ExitCode
	}
)

// Error implements the error interface.
func (e *BadArityError) Error() string {
	return fmt.Sprintf("%s: %s: got %d optional arguments, at most %d allowed", e.Op, ErrBadArity, e.Got, e.Max)
}

// Unwrap returns ErrBadArity so callers can use errors.Is for programmatic detection.
func (e *BadArityError) Unwrap() error { return ErrBadArity }

// Error implements the error interface.
func (e *HostCommandError) Error() string {
	return fmt.Sprintf("%s: %s exited with status %s", ErrHostCommand, e.Command, e.ExitCode)
}

// Unwrap returns ErrHostCommand so callers can use errors.Is for programmatic detection.
func (e *HostCommandError) Unwrap() error { return ErrHostCommand }

// WithStdio sets the standard streams translated code sees.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(b *Binder) {
		if stdin != nil {
			b.stdin = bufio.NewReader(stdin)
		}
		if stdout != nil {
			b.stdout = stdout
		}
		if stderr != nil {
			b.stderr = stderr
		}
	}
}

// WithDir sets the working directory for host commands.
func WithDir(dir string) Option {
	return func(b *Binder) { b.dir = dir }
}

// WithEnv sets the environment for host commands as KEY=VALUE pairs.
func WithEnv(env []string) Option {
	return func(b *Binder) { b.env = env }
}

// WithStrict enables strict failure mode: a nonzero status from Exec
// becomes an error instead of a slot value. The utility bindings suspend
// this for their own host invocations per the convention.
func WithStrict(strict bool) Option {
	return func(b *Binder) { b.strict = strict }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(b *Binder) { b.logger = logger }
}

// New creates a Binder over the given store and runner.
func New(store *word.Store, run runner.Runner, opts ...Option) *Binder {
	b := &Binder{
		store:  store,
		run:    run,
		stdin:  bufio.NewReader(strings.NewReader("")),
		stdout: io.Discard,
		stderr: io.Discard,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Redirect swaps the output streams and returns the function that puts
// the previous ones back. Hosts use it to point a binding at the stdout of
// the shell command that invoked it, so command substitution captures work.
// Standard input is deliberately not swapped: Getchar owns a persistent
// buffered reader over the program's stdin.
func (b *Binder) Redirect(stdout, stderr io.Writer) func() {
	prevOut, prevErr := b.stdout, b.stderr
	if stdout != nil {
		b.stdout = stdout
	}
	if stderr != nil {
		b.stderr = stderr
	}
	return func() {
		b.stdout, b.stderr = prevOut, prevErr
	}
}

// Strict reports whether strict failure mode is active.
func (b *Binder) Strict() bool { return b.strict }

// SetStrict toggles strict failure mode.
func (b *Binder) SetStrict(strict bool) { b.strict = strict }

// suspendStrict turns strict mode off and returns the function that puts
// it back. Bindings call it around host command invocations so a nonzero
// status lands in the return slot instead of failing the program.
func (b *Binder) suspendStrict() func() {
	prev := b.strict
	b.strict = false
	return func() { b.strict = prev }
}

// invocation assembles a runner invocation for a utility call.
func (b *Binder) invocation(command string, args ...string) *runner.Invocation {
	return &runner.Invocation{
		Command: command,
		Args:    args,
		Dir:     b.dir,
		Env:     b.env,
		Stdout:  b.stdout,
		Stderr:  b.stderr,
	}
}

// status runs a utility whose only result is its exit code, streaming any
// output, and writes the status into the return slot.
func (b *Binder) status(ret frame.Slot, command string, args ...string) error {
	restore := b.suspendStrict()
	defer restore()

	res := b.run.Run(b.invocation(command, args...))
	if res.Error != nil {
		return res.Error
	}
	b.logger.Debug("host command", "utility", command, "status", res.ExitCode)
	return ret.Set(word.Word(res.ExitCode))
}

// capture runs a utility and returns its captured stdout, with the exit
// code; infrastructure failures come back as errors.
func (b *Binder) capture(command string, args ...string) (string, runner.ExitCode, error) {
	restore := b.suspendStrict()
	defer restore()

	res := b.run.RunCapture(b.invocation(command, args...))
	if res.Error != nil {
		return "", res.ExitCode, res.Error
	}
	if res.ErrOutput != "" {
		fmt.Fprint(b.stderr, res.ErrOutput)
	}
	b.logger.Debug("host command", "utility", command, "status", res.ExitCode)
	return res.Output, res.ExitCode, nil
}

// Cat streams the file at the C-string path to standard output and writes
// the utility's exit status into the return slot.
func (b *Binder) Cat(ret frame.Slot, path word.Word) error {
	p, err := b.store.PackString(path)
	if err != nil {
		return err
	}
	return b.status(ret, "cat", p)
}

// Ls lists a directory. It is variadic by arity: beyond the return slot it
// accepts zero arguments (current directory) or one (a C-string path). The
// return slot receives the address of a null-terminated C string array of
// the listing's lines, or the null pointer if the utility failed.
func (b *Binder) Ls(ret frame.Slot, args ...word.Word) error {
	if len(args) > 1 {
		return &BadArityError{Op: "ls", Got: len(args), Max: 1}
	}
	argv := []string{}
	if len(args) == 1 {
		p, err := b.store.PackString(args[0])
		if err != nil {
			return err
		}
		argv = append(argv, p)
	}

	out, code, err := b.capture("ls", argv...)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return ret.Set(word.Null)
	}
	arr, err := b.store.UnpackLines(out)
	if err != nil {
		return err
	}
	return ret.Set(arr)
}

// Touch creates or updates the file at the C-string path; the return slot
// receives the exit status.
func (b *Binder) Touch(ret frame.Slot, path word.Word) error {
	p, err := b.store.PackString(path)
	if err != nil {
		return err
	}
	return b.status(ret, "touch", p)
}

// Mkdir creates the directory at the C-string path; the return slot
// receives the exit status.
func (b *Binder) Mkdir(ret frame.Slot, path word.Word) error {
	p, err := b.store.PackString(path)
	if err != nil {
		return err
	}
	return b.status(ret, "mkdir", p)
}

// Chmod applies the C-string mode (e.g. "755") to the C-string path; the
// return slot receives the exit status.
func (b *Binder) Chmod(ret frame.Slot, mode, path word.Word) error {
	m, err := b.store.PackString(mode)
	if err != nil {
		return err
	}
	p, err := b.store.PackString(path)
	if err != nil {
		return err
	}
	return b.status(ret, "chmod", m, p)
}

// Wc counts the file at the C-string path; the return slot receives a
// fresh C string holding wc's counts line, or the null pointer on failure.
func (b *Binder) Wc(ret frame.Slot, path word.Word) error {
	p, err := b.store.PackString(path)
	if err != nil {
		return err
	}
	out, code, err := b.capture("wc", p)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return ret.Set(word.Null)
	}
	cs, err := b.store.UnpackString(strings.TrimSuffix(out, "\n"))
	if err != nil {
		return err
	}
	return ret.Set(cs)
}

// Date writes the current date as a fresh C string into the return slot.
func (b *Binder) Date(ret frame.Slot) error {
	return b.captureString(ret, "date")
}

// Pwd writes the working directory as a fresh C string into the return slot.
func (b *Binder) Pwd(ret frame.Slot) error {
	return b.captureString(ret, "pwd")
}

func (b *Binder) captureString(ret frame.Slot, command string, args ...string) error {
	out, code, err := b.capture(command, args...)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return ret.Set(word.Null)
	}
	cs, err := b.store.UnpackString(strings.TrimSuffix(out, "\n"))
	if err != nil {
		return err
	}
	return ret.Set(cs)
}

// Exec runs an arbitrary host command whose argv words are C-string
// addresses. Unlike the named bindings it honors strict failure mode: when
// strict is active a nonzero status is returned as a HostCommandError;
// otherwise the status goes into the return slot.
func (b *Binder) Exec(ret frame.Slot, argv ...word.Word) error {
	if len(argv) == 0 {
		return &BadArityError{Op: "exec", Got: 0, Max: 0}
	}
	words := make([]string, 0, len(argv))
	for _, a := range argv {
		s, err := b.store.PackString(a)
		if err != nil {
			return err
		}
		words = append(words, s)
	}

	res := b.run.Run(b.invocation(words[0], words[1:]...))
	if res.Error != nil {
		return res.Error
	}
	if b.strict && !res.ExitCode.IsSuccess() {
		return &HostCommandError{Command: words[0], ExitCode: res.ExitCode}
	}
	return ret.Set(word.Word(res.ExitCode))
}
