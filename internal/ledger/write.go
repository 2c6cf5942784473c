package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/percregress/internal/harness"
)

// ModeVerify tags runs recorded from a verify report.
const ModeVerify = "verify"

// RecordRun stores report and its cases in one transaction. Recording the
// same run ID twice returns ErrRunExists and leaves the ledger unchanged.
func (l *Ledger) RecordRun(ctx context.Context, report *harness.VerifyReport) error {
	if report.RunID == "" {
		return fmt.Errorf("record run: empty run id")
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return fmt.Errorf("record run: next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, total, passed, failed, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, report.RunID, ModeVerify, report.Total, report.Passed, report.Failed, seq)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("record run: %w", err)
	} else if n == 0 {
		return fmt.Errorf("record run %s: %w", report.RunID, ErrRunExists)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO case_results (run_id, ordinal, corpus, file, description, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("record run: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range report.Cases {
		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			c.Ordinal,
			c.Corpus,
			c.File,
			c.Description,
			string(c.Status),
			strings.Join(c.Errors, "\n"),
		); err != nil {
			return fmt.Errorf("record run: case %d: %w", c.Ordinal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: commit: %w", err)
	}
	return nil
}
