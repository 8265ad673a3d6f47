// pattern: Imperative Shell

package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"taskspace/internal/logging"
)

// Spec describes a single external command invocation.
// Commands are always argument vectors, never shell strings.
type Spec struct {
	Command string
	Args    []string
	Dir     string
}

// String returns the command line for logging and fake lookup.
func (s Spec) String() string {
	if len(s.Args) == 0 {
		return s.Command
	}
	return s.Command + " " + strings.Join(s.Args, " ")
}

// Result holds the captured outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs external commands. The narrow surface keeps git and
// package-manager logic testable against fakes without spawning processes.
type Executor interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// SystemExecutor runs commands on the host via os/exec.
type SystemExecutor struct {
	logger *logging.ScopedLogger
}

// NewSystemExecutor creates an executor that spawns real processes.
func NewSystemExecutor(logger *logging.ScopedLogger) *SystemExecutor {
	return &SystemExecutor{logger: logger}
}

// Run executes the command and captures stdout/stderr separately.
// A non-zero exit is not an error; it is reported through Result.ExitCode.
// An error is returned only when the command could not be started at all
// (missing binary, bad working directory, cancelled context).
func (e *SystemExecutor) Run(ctx context.Context, spec Spec) (Result, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running command", "command", spec.String(), "dir", spec.Dir)

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			e.logger.Debug("command exited", "command", spec.Command, "exit_code", result.ExitCode)
			return result, nil
		}
		// Start failure or context cancellation
		e.logger.Warn("command failed to run", "command", spec.Command, "error", err)
		result.ExitCode = -1
		return result, err
	}

	return result, nil
}
