package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/roach88/percregress/internal/params"
)

// Process executes the simulation binary as a child process.
type Process struct {
	// Path is the program to run. Relative paths resolve against Dir.
	Path string

	// Dir is the child's working directory; empty means the caller's.
	Dir string

	// Env is the child's environment; nil inherits the caller's.
	Env []string

	// Stdout and Stderr receive the child's output when not silent.
	// Nil means os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout kills a run that takes longer. Zero disables it.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewProcess returns a Process for the program at path.
func NewProcess(path string) *Process {
	return &Process{Path: path}
}

// Check verifies that Path names an executable file.
func (p *Process) Check() error {
	if _, err := exec.LookPath(p.resolved()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrProgramNotFound, p.Path, err)
	}
	return nil
}

// Execute runs the program once and waits for it to exit.
func (p *Process) Execute(ctx context.Context, v params.Vector, paths ArtifactPaths, silent bool) (ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return ExecutionResult{}, fmt.Errorf("execute: %w", err)
	}

	runCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := Args(v, paths)
	cmd := exec.CommandContext(runCtx, p.Path, args...)
	cmd.Dir = p.Dir
	cmd.Env = p.Env
	if !silent {
		cmd.Stdout = p.stdout()
		cmd.Stderr = p.stderr()
	}

	p.logger().Debug("executing simulation", "program", p.Path, "args", args, "silent", silent)

	err := cmd.Run()
	if err == nil {
		return ExecutionResult{Success: true, ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return ExecutionResult{}, fmt.Errorf("execute: %w", ctx.Err())
	case runCtx.Err() != nil:
		p.logger().Debug("simulation timed out", "timeout", p.Timeout)
		return ExecutionResult{ExitCode: -1, TimedOut: true}, nil
	case errors.As(err, &exitErr):
		p.logger().Debug("simulation failed", "exit_code", exitErr.ExitCode())
		return ExecutionResult{ExitCode: exitErr.ExitCode()}, nil
	}
	return ExecutionResult{}, fmt.Errorf("%w: %s: %v", ErrProgramNotFound, p.Path, err)
}

// resolved returns Path as exec would see it; LookPath needs a separator to
// skip the PATH search for programs named relative to Dir.
func (p *Process) resolved() string {
	if p.Dir == "" || filepath.IsAbs(p.Path) || !strings.ContainsRune(p.Path, filepath.Separator) {
		return p.Path
	}
	return filepath.Join(p.Dir, p.Path)
}

func (p *Process) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *Process) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

func (p *Process) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
