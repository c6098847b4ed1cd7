// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"c2sh-runtime/internal/issue"
	"c2sh-runtime/internal/runner"
	"c2sh-runtime/internal/shellhost"
)

var (
	runnerFlag   string
	strictFlag   bool
	workdirFlag  string
	maxWordsFlag int64

	runCmd = &cobra.Command{
		Use:   "run <program> [args...]",
		Short: "Run a translated program",
		Long: `Run a shell program produced by the c2sh translator.

The program executes in the embedded interpreter with the runtime
serving its __rt calls. Arguments after the program path become the
program's positional parameters. The program's exit status becomes
c2shrun's exit status.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				rendered, _ := issue.Get(issue.ProgramNotFoundId).Render("dark")
				fmt.Fprint(os.Stderr, rendered)
				return issue.NewErrorContext().
					WithOperation("load translated program").
					WithResource(args[0]).
					WithSuggestion("Check the path for typos").
					Wrap(err).
					BuildError()
			}

			host, err := newHost(cmd)
			if err != nil {
				return err
			}

			return executeProgram(cmd, host, filepath.Base(args[0]), string(src), args[1:])
		},
	}
)

func init() {
	addRuntimeFlags(runCmd)
}

// addRuntimeFlags registers the flags shared by run and eval.
func addRuntimeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runnerFlag, "runner", "", "runner for host utilities: native or virtual (default from config)")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "start in strict failure mode (default from config)")
	cmd.Flags().StringVar(&workdirFlag, "workdir", "", "working directory for the program (default from config)")
	cmd.Flags().Int64Var(&maxWordsFlag, "max-words", 0, "cap the word store; 0 means the full addressable range")
}

// newHost assembles a shell host from the loaded configuration with flag
// overrides applied on top.
func newHost(cmd *cobra.Command) (*shellhost.Host, error) {
	mode := runner.Mode(loadedCfg.Runner)
	if cmd.Flags().Changed("runner") {
		mode = runner.Mode(runnerFlag)
	}
	if valid, errs := mode.IsValid(); !valid {
		rendered, _ := issue.Get(issue.InvalidRunnerModeId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return nil, errs[0]
	}

	r, err := runner.ForMode(mode)
	if err != nil {
		return nil, err
	}
	if !r.Available() {
		rendered, _ := issue.Get(issue.RunnerNotAvailableId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return nil, fmt.Errorf("runner %q is not available on this system", r.Name())
	}

	strict := loadedCfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = strictFlag
	}

	workdir := string(loadedCfg.Workdir)
	if cmd.Flags().Changed("workdir") {
		workdir = workdirFlag
	}

	maxWords := loadedCfg.Store.MaxWords
	if cmd.Flags().Changed("max-words") {
		maxWords = maxWordsFlag
	}

	return shellhost.New(
		shellhost.WithRunner(r),
		shellhost.WithStrict(strict),
		shellhost.WithDir(workdir),
		shellhost.WithStoreLimit(maxWords),
		shellhost.WithLogger(newLogger()),
	), nil
}

// executeProgram runs the program on the host with the process streams and
// maps the outcome onto the CLI exit status.
func executeProgram(cmd *cobra.Command, host *shellhost.Host, name, src string, args []string) error {
	res := host.Run(cmd.Context(), name, src, shellhost.RunIO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, args)

	if res.Error != nil {
		return issue.NewErrorContext().
			WithOperation("run program").
			WithResource(name).
			WithSuggestion("Run with --verbose for the full error chain").
			Wrap(res.Error).
			BuildError()
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
