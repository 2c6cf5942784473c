package sim

import (
	"context"

	"github.com/roach88/percregress/internal/params"
)

// ArtifactPaths are the two output files handed to the program. They are
// passed through verbatim and never validated.
type ArtifactPaths struct {
	Dat  string
	Perc string
}

// ExecutionResult is the outcome of one invocation.
type ExecutionResult struct {
	// Success is true iff the program exited with status 0.
	Success bool

	// ExitCode is the process exit status (-1 if killed).
	ExitCode int

	// TimedOut is set when the run was killed by Process.Timeout.
	TimedOut bool
}

// Executor runs the simulation for one parameter vector.
//
// silent suppresses the program's stdout and stderr; a non-zero exit is
// still reported through the result. The returned error is reserved for
// failures that are not per-case, such as ErrProgramNotFound or a cancelled
// context.
type Executor interface {
	Execute(ctx context.Context, v params.Vector, paths ArtifactPaths, silent bool) (ExecutionResult, error)
}

// Checker is implemented by executors that can verify their program up front.
type Checker interface {
	Check() error
}

// Args builds the argument list for v: set fields as separate flag/value
// pairs, then the artifact paths joined to their flags with no space.
func Args(v params.Vector, paths ArtifactPaths) []string {
	args := v.Flags()
	return append(args, "-d"+paths.Dat, "-p"+paths.Perc)
}
