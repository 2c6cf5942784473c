package sim

import "errors"

var (
	// ErrProgramNotFound means the simulation binary could not be started.
	ErrProgramNotFound = errors.New("simulation program not found or not executable")

	// ErrBuildFailed means the build step exited unsuccessfully.
	ErrBuildFailed = errors.New("build failed")

	// ErrArtifactMissing means an output file could not be read after a
	// successful run.
	ErrArtifactMissing = errors.New("artifact missing")
)
