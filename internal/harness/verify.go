package harness

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/roach88/percregress/internal/golden"
	"github.com/roach88/percregress/internal/sim"
)

type pendingRecord struct {
	corpus golden.Corpus
	path   string
}

// Verify builds the program, then replays every record of every corpus in
// order and compares the produced artifacts with the recorded ones.
//
// All cases run even after failures. The returned error is non-nil only for
// run-level failures (build, missing program, scratch, unreadable corpus
// directory, cancelled context); per-case failures are in the report.
func (r *Runner) Verify(ctx context.Context, corpora []golden.Corpus) (*VerifyReport, error) {
	if r.Builder != nil {
		if err := r.Builder.Build(ctx); err != nil {
			return nil, err
		}
	}
	if err := r.checkProgram(); err != nil {
		return nil, err
	}

	scratch, err := OpenScratch(r.ScratchDir)
	if err != nil {
		return nil, err
	}
	defer r.closeScratch(scratch)

	var pending []pendingRecord
	for _, c := range corpora {
		files, err := c.Store.List()
		if err != nil {
			return nil, fmt.Errorf("corpus %s: %w", c.Name, err)
		}
		for _, f := range files {
			pending = append(pending, pendingRecord{corpus: c, path: f})
		}
	}

	report := &VerifyReport{RunID: r.runID(), Total: len(pending)}
	r.logger().Info("verifying golden records", "run_id", report.RunID, "total", report.Total)

	for i, p := range pending {
		cr, err := r.verifyCase(ctx, i+1, p, scratch)
		if err != nil {
			return report, err
		}
		report.add(cr)
		r.printCase(cr, report.Total)
		r.logger().Debug("verified case", "ordinal", cr.Ordinal, "description", cr.Description, "status", cr.Status)
	}

	return report, nil
}

func (r *Runner) verifyCase(ctx context.Context, ordinal int, p pendingRecord, scratch *Scratch) (CaseResult, error) {
	cr := CaseResult{
		Ordinal: ordinal,
		Index:   -1,
		Corpus:  p.corpus.Name,
		File:    filepath.Base(p.path),
		Status:  StatusPass,
	}

	tc, err := p.corpus.Store.Load(p.path)
	if err != nil {
		cr.fail(StatusMalformedRecord, err.Error())
		return cr, nil
	}
	cr.Index = tc.Index
	cr.Description = tc.Description

	// The open scratch decides where artifacts go, whatever the store was
	// configured with.
	tc.Paths = scratch.ArtifactPaths(filepath.Base(tc.Paths.Dat), filepath.Base(tc.Paths.Perc))

	if err := scratch.Clear(); err != nil {
		return cr, err
	}

	res, err := r.Exec.Execute(ctx, tc.Params, tc.Paths, true)
	if err != nil {
		return cr, fmt.Errorf("%s: %w", cr.Name(), err)
	}
	if !res.Success {
		cr.fail(StatusExecutionFailure, exitMessage(res))
		return cr, nil
	}

	art, err := sim.ReadArtifacts(tc.Paths)
	if err != nil {
		cr.fail(StatusArtifactMissing, err.Error())
		return cr, nil
	}

	if msg := compareArtifact("dat", tc.Dat, art.Dat); msg != "" {
		cr.fail(StatusMismatch, msg)
	}
	if msg := compareArtifact("perc", tc.Perc, art.Perc); msg != "" {
		cr.fail(StatusMismatch, msg)
	}
	return cr, nil
}

// printCase writes the per-case result line, e.g.
//
//	✓ [3/30] automated/00002.json (g=default, s=default, r=0.1, m=default)
func (r *Runner) printCase(cr CaseResult, total int) {
	w := r.out()
	mark := "✓"
	if !cr.Pass() {
		mark = "✗"
	}
	line := fmt.Sprintf("%s [%d/%d] %s", mark, cr.Ordinal, total, cr.Name())
	if cr.Description != "" {
		line += " " + cr.Description
	}
	fmt.Fprintln(w, line)
	for _, e := range cr.Errors {
		fmt.Fprintf(w, "  %s: %s\n", cr.Status, e)
	}
}
