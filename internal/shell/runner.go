package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Controls how a command is run.
type Options struct {
	Dir   string // Working directory for the command. Empty uses the caller's.
	Quiet bool   // Suppresses the command's stdout and stderr when true.
}

// Launches external processes on behalf of the stages.
//
// Implementations block until the launched process exits. A non-zero exit
// is reported as an [*ExitError] so callers can distinguish command failure
// from launch failure.
type Runner interface {

	// Runs a command to completion, streaming output unless quieted.
	Run(ctx context.Context, opts Options, argv ...string) error

	// Runs a command to completion and returns its captured stdout.
	//
	// On a non-zero exit the captured stdout is still returned alongside
	// the [*ExitError], for tools that signal state through exit codes.
	Output(ctx context.Context, argv ...string) ([]byte, error)
}

// Reports a command that exited with a non-zero status.
type ExitError struct {
	Cmd  string // Command name (argv[0]).
	Code int    // Process exit code.
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.Code)
}

// Returns the process-backed [Runner].
func New() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, opts Options, argv ...string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	slog.Debug("run", "argv", strings.Join(argv, " "), "dir", opts.Dir, "quiet", opts.Quiet)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if !opts.Quiet {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	return wrapExit(argv[0], cmd.Run())
}

func (execRunner) Output(ctx context.Context, argv ...string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	slog.Debug("output", "argv", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.Output()
	return out, wrapExit(argv[0], err)
}

// Converts an [*exec.ExitError] into an [*ExitError], leaving other errors
// (including nil) wrapped with the command name.
func wrapExit(name string, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Cmd: name, Code: exitErr.ExitCode()}
	}

	return fmt.Errorf("%s: %w", name, err)
}
