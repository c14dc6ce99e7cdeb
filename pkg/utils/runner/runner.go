// Package runner executes external commands on behalf of pipeline stages.
//
// Every heavy verb in the pipeline (compile, test, analyze) belongs to an external
// tool. The runner invokes that tool and reports its outcome without adding retry
// or recovery semantics of its own.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// ErrEmptyCommand is returned when a stage is configured with an empty command line.
var ErrEmptyCommand = errors.New("empty command")

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// CommandRunner runs a command line in a working directory.
type CommandRunner interface {
	Run(ctx context.Context, workDir string, commandLine string) (Result, error)
}

// ShellCommandRunner runs command lines through the system shell, mirroring how a
// build server executes pipeline stage scripts. Output is streamed to the configured
// writers and captured for error reporting.
type ShellCommandRunner struct {
	stdout io.Writer
	stderr io.Writer
	env    []string
}

// NewShellCommandRunner creates a ShellCommandRunner writing to the provided writers.
// Nil writers default to os.Stdout and os.Stderr.
func NewShellCommandRunner(stdout, stderr io.Writer) *ShellCommandRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ShellCommandRunner{stdout: stdout, stderr: stderr}
}

// FormatEnv flattens env into sorted KEY=VALUE pairs for WithEnv.
func FormatEnv(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(env))
	for _, key := range slices.Sorted(maps.Keys(env)) {
		pairs = append(pairs, key+"="+env[key])
	}

	return pairs
}

// WithEnv appends environment variables (KEY=VALUE) to the inherited environment.
func (r *ShellCommandRunner) WithEnv(env ...string) *ShellCommandRunner {
	r.env = append(r.env, env...)

	return r
}

// Run executes the command line and returns its captured output.
// The command's exit status is the external tool's own failure report; it is wrapped
// with the captured stderr so the caller sees what the tool printed.
func (r *ShellCommandRunner) Run(
	ctx context.Context,
	workDir string,
	commandLine string,
) (Result, error) {
	if strings.TrimSpace(commandLine) == "" {
		return Result{}, ErrEmptyCommand
	}

	//nolint:gosec // The command line is the user's own pipeline configuration.
	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), r.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = io.MultiWriter(r.stdout, &stdout)
	cmd.Stderr = io.MultiWriter(r.stderr, &stderr)

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		return result, fmt.Errorf("run %q: %w\n%s", commandLine, err, stderr.String())
	}

	return result, nil
}
