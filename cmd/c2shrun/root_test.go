// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"c2sh-runtime/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestRootSubcommands(t *testing.T) {
	want := []string{"run", "eval", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q subcommand", name)
		}
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("run program").
		WithSuggestion("Try again").
		Wrap(plain).
		BuildError()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to run program") {
		t.Errorf("formatted error missing operation: %q", got)
	}
	if !strings.Contains(got, "Try again") {
		t.Errorf("formatted error missing suggestion: %q", got)
	}

	verbose := formatErrorForDisplay(actionable, true)
	if !strings.Contains(verbose, "Error chain") {
		t.Errorf("verbose formatting should include the error chain: %q", verbose)
	}
}

func TestExitError(t *testing.T) {
	e := &ExitError{Code: 3}
	if e.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", e.Error(), "exit status 3")
	}

	cause := errors.New("boom")
	wrapped := &ExitError{Code: 1, Err: cause}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), "boom")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}
