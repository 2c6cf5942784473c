package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/percregress/internal/golden"
	"github.com/roach88/percregress/internal/params"
	"github.com/roach88/percregress/internal/sim"
)

// Generate executes every vector of grid and persists each successful case
// to store under its ordinal.
//
// Per-case failures are collected in the report and leave no record. The
// returned error is non-nil only for run-level failures: a missing program,
// an unusable scratch directory, a cancelled context, or a record that
// cannot be written.
func (r *Runner) Generate(ctx context.Context, grid *params.Grid, store *golden.Store) (*GenerateReport, error) {
	if err := r.checkProgram(); err != nil {
		return nil, err
	}

	scratch, err := OpenScratch(r.ScratchDir)
	if err != nil {
		return nil, err
	}
	defer r.closeScratch(scratch)

	out := r.out()
	report := &GenerateReport{Total: grid.Total()}
	fmt.Fprintln(out, printer.Sprintf("Generating a total of %d tests", report.Total))

	paths := scratch.ArtifactPaths(r.artifactNames())
	prog := newProgress(out, report.Total)
	defer prog.finish()

	for i, v := range grid.All() {
		cr, err := r.generateCase(ctx, i, v, paths, scratch, store)
		if err != nil {
			return report, err
		}
		if cr.Pass() {
			report.Written++
		} else {
			report.Failures = append(report.Failures, cr)
		}
		r.logger().Debug("generated case", "index", i, "description", cr.Description, "status", cr.Status)
		prog.step(i + 1)
	}

	return report, nil
}

func (r *Runner) generateCase(ctx context.Context, i int, v params.Vector, paths sim.ArtifactPaths, scratch *Scratch, store *golden.Store) (CaseResult, error) {
	cr := CaseResult{
		Ordinal:     i + 1,
		Index:       i,
		File:        golden.FileName(i),
		Description: v.Description(),
		Status:      StatusPass,
	}

	if err := scratch.Clear(); err != nil {
		return cr, err
	}

	res, err := r.Exec.Execute(ctx, v, paths, true)
	if err != nil {
		return cr, fmt.Errorf("case %d %s: %w", i, cr.Description, err)
	}
	if !res.Success {
		cr.fail(StatusExecutionFailure, exitMessage(res))
		return cr, nil
	}

	art, err := sim.ReadArtifacts(paths)
	if err != nil {
		cr.fail(StatusArtifactMissing, err.Error())
		return cr, nil
	}

	tc := golden.TestCase{
		Index:       i,
		Description: cr.Description,
		Params:      v,
		Paths:       paths,
		Dat:         art.Dat,
		Perc:        art.Perc,
	}
	if _, err := store.Persist(i, tc); err != nil {
		if errors.Is(err, golden.ErrNotText) {
			cr.fail(StatusUnstorable, err.Error())
			return cr, nil
		}
		return cr, err
	}
	return cr, nil
}

func (r *Runner) closeScratch(s *Scratch) {
	if err := s.Close(); err != nil {
		r.logger().Warn("failed to remove scratch directory", "dir", s.Dir(), "error", err)
	}
}

func exitMessage(res sim.ExecutionResult) string {
	if res.TimedOut {
		return "simulation timed out"
	}
	return fmt.Sprintf("simulation exited with status %d", res.ExitCode)
}
