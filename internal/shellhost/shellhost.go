// SPDX-License-Identifier: MPL-2.0

// Package shellhost executes translated shell programs. The c2sh
// translator compiles C into POSIX shell source whose memory, marshalling
// and utility operations are calls to a reserved "__rt" command; this
// package runs such programs in the embedded mvdan/sh interpreter and
// serves __rt from the Go runtime, so the word store and allocator live on
// this side of the boundary while the program's flat variables live in the
// shell.
//
// Results flow the way shell callers expect them: value-producing
// operations print to stdout for command substitution capture, and
// status-producing operations report through the exit code.
package shellhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"c2sh-runtime/internal/bindings"
	"c2sh-runtime/internal/runner"
	"c2sh-runtime/internal/word"
)

// RuntimeCommand is the reserved command name translated programs use to
// reach the runtime.
const RuntimeCommand = "__rt"

// ErrUnknownOp is the sentinel error wrapped by UnknownOpError.
var ErrUnknownOp = errors.New("unknown runtime operation")

type (
	// Host runs translated programs. It carries configuration only; each
	// Run gets a fresh word store, matching process lifetime semantics on
	// the target.
	Host struct {
		run        runner.Runner
		strict     bool
		dir        string
		env        []string
		storeLimit int64
		logger     *log.Logger
	}

	// Option configures a Host.
	Option func(*Host)

	// RunIO binds a program run to its standard streams.
	RunIO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// UnknownOpError is returned when a program invokes a runtime
	// operation the host does not provide. It wraps ErrUnknownOp for
	// errors.Is() compatibility.
	UnknownOpError struct {
		Op string
	}

	// session is the per-run state: the store, the binder and the
	// persistent stdin reader shared by getchar and the bindings. The
	// mutex serializes runtime operations because the interpreter runs
	// pipeline segments concurrently while the store expects the
	// single-threaded execution model of the target.
	session struct {
		mu     sync.Mutex
		host   *Host
		store  *word.Store
		binder *bindings.Binder
	}
)

// Error implements the error interface.
func (e *UnknownOpError) Error() string {
	return fmt.Sprintf("%s %s: %s", RuntimeCommand, e.Op, ErrUnknownOp)
}

// Unwrap returns ErrUnknownOp so callers can use errors.Is for programmatic detection.
func (e *UnknownOpError) Unwrap() error { return ErrUnknownOp }

// WithRunner selects the runner used for host utility bindings.
// The default is the native runner.
func WithRunner(r runner.Runner) Option {
	return func(h *Host) { h.run = r }
}

// WithStrict starts programs in strict failure mode.
func WithStrict(strict bool) Option {
	return func(h *Host) { h.strict = strict }
}

// WithDir sets the working directory for the program and its utilities.
func WithDir(dir string) Option {
	return func(h *Host) { h.dir = dir }
}

// WithEnv sets the program environment as KEY=VALUE pairs.
func WithEnv(env []string) Option {
	return func(h *Host) { h.env = env }
}

// WithStoreLimit caps the word store, mainly for tests exercising
// allocation exhaustion.
func WithStoreLimit(maxWords int64) Option {
	return func(h *Host) { h.storeLimit = maxWords }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// New creates a Host.
func New(opts ...Option) *Host {
	h := &Host{
		run:    runner.NewNativeRunner(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run parses and executes a translated program. Positional args become the
// program's $1..$n. The result carries the program's exit status;
// Result.Error is reserved for infrastructure failures.
func (h *Host) Run(ctx context.Context, name, src string, rio RunIO, args []string) *runner.Result {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(src), name)
	if err != nil {
		return runner.NewErrorResult(1, fmt.Errorf("failed to parse program: %w", err))
	}

	var storeOpts []word.StoreOption
	if h.storeLimit > 0 {
		storeOpts = append(storeOpts, word.WithLimit(h.storeLimit))
	}
	sess := &session{host: h, store: word.NewStore(storeOpts...)}
	sess.binder = bindings.New(sess.store, h.run,
		bindings.WithStdio(rio.Stdin, rio.Stdout, rio.Stderr),
		bindings.WithDir(h.dir),
		bindings.WithEnv(h.env),
		bindings.WithStrict(h.strict),
		bindings.WithLogger(h.logger),
	)

	opts := []interp.RunnerOption{
		interp.StdIO(rio.Stdin, rio.Stdout, rio.Stderr),
		interp.ExecHandlers(sess.execHandler),
	}
	if h.dir != "" {
		opts = append(opts, interp.Dir(h.dir))
	}
	if h.env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(h.env...)))
	}
	if len(args) > 0 {
		// "--" keeps leading dashes in program args from being read as
		// shell options.
		opts = append(opts, interp.Params(append([]string{"--"}, args...)...))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return runner.NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	h.logger.Debug("running translated program", "name", name, "runner", h.run.Name(), "strict", h.strict)

	if err := sh.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return runner.NewExitCodeResult(runner.ExitCode(exitStatus))
		}
		return runner.NewErrorResult(1, fmt.Errorf("program execution failed: %w", err))
	}

	return runner.NewSuccessResult()
}

// execHandler intercepts the reserved runtime command and passes everything
// else to the next handler (ultimately the interpreter's default, which
// spawns host processes).
func (s *session) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 || args[0] != RuntimeCommand {
			return next(ctx, args)
		}
		hc := interp.HandlerCtx(ctx)
		if len(args) < 2 {
			fmt.Fprintf(hc.Stderr, "%s: missing operation\n", RuntimeCommand)
			return interp.ExitStatus(2)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.dispatch(hc, args[1], args[2:])
	}
}
