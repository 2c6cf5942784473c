// Package sim runs the external percolation program.
//
// The program is a black box with a getopt-style CLI:
//
//	main.out -g <grid> -s <seed> -r <rho> -m <max_clusters> -d<dat path> -p<map path>
//
// Each flag may be omitted to let the program use its built-in default.
// Executor is the single capability the harness depends on; Process is the
// os/exec implementation. Execute reports success through the exit status
// only. Reading the two output files is a separate step (ReadArtifacts) that
// callers perform only after a successful run.
//
// Error classes:
//   - ErrProgramNotFound: the program is missing or not executable (fatal)
//   - ErrBuildFailed: the build collaborator failed (fatal)
//   - ErrArtifactMissing: success was reported but an output file is absent
//
// A non-zero exit is not an error: it is an ExecutionResult with Success false.
package sim
