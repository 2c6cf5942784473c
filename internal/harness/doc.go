// Package harness drives golden-snapshot regression runs of the percolation
// program.
//
// Two entry points share one Runner:
//
//   - Generate enumerates a params.Grid, executes every vector, and persists
//     each successful case as a golden record. Rerunning it overwrites the
//     records for the same ordinals.
//   - Verify builds the program, loads every record from each corpus,
//     re-executes it, and compares both artifacts byte for byte against the
//     record. It always runs every case and reports all failures.
//
// Both modes exchange artifacts with the program through a single Scratch
// directory that is created at the start of the run and removed on every
// exit path. Cases run strictly one after another; each case's artifacts are
// read before the next case overwrites them.
//
// # Failure classes
//
// Fatal to the whole run (returned as errors):
//   - sim.ErrBuildFailed: the build collaborator failed; no case runs
//   - sim.ErrProgramNotFound: the program is missing or not executable
//   - ErrScratch: the scratch directory could not be prepared
//
// Isolated to one case (recorded as a CaseResult status):
//   - StatusExecutionFailure: the program exited non-zero
//   - StatusArtifactMissing: success was reported but an output is unreadable
//   - StatusMismatch: artifacts differ from the golden record
//   - StatusMalformedRecord: the record failed to parse or validate
package harness
