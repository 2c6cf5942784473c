package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/percregress/internal/harness"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID     string `json:"id"`
	Mode   string `json:"mode"`
	Total  int    `json:"total"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
	Seq    int64  `json:"seq"`
}

// CaseRow is one recorded case outcome.
type CaseRow struct {
	RunID       string         `json:"run_id"`
	Ordinal     int            `json:"ordinal"`
	Corpus      string         `json:"corpus"`
	File        string         `json:"file"`
	Description string         `json:"description"`
	Status      harness.Status `json:"status"`
	Detail      string         `json:"detail,omitempty"`
}

// Runs returns every recorded run, oldest first.
//
// Returns an empty slice (not nil) when no runs exist.
func (l *Ledger) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, mode, total, passed, failed, seq
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Mode, &r.Total, &r.Passed, &r.Failed, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// CaseResults returns every case of a run in ordinal order.
func (l *Ledger) CaseResults(ctx context.Context, runID string) ([]CaseRow, error) {
	return l.queryCases(ctx, `
		SELECT run_id, ordinal, corpus, file, description, status, detail
		FROM case_results
		WHERE run_id = ?
		ORDER BY ordinal ASC
	`, runID)
}

// Failures returns the failed cases of a run in ordinal order.
func (l *Ledger) Failures(ctx context.Context, runID string) ([]CaseRow, error) {
	return l.queryCases(ctx, `
		SELECT run_id, ordinal, corpus, file, description, status, detail
		FROM case_results
		WHERE run_id = ? AND status != ?
		ORDER BY ordinal ASC
	`, runID, string(harness.StatusPass))
}

func (l *Ledger) queryCases(ctx context.Context, query string, args ...any) ([]CaseRow, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	cases := []CaseRow{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}
	return cases, nil
}

func scanCase(rows *sql.Rows) (CaseRow, error) {
	var c CaseRow
	var status string
	if err := rows.Scan(&c.RunID, &c.Ordinal, &c.Corpus, &c.File, &c.Description, &status, &c.Detail); err != nil {
		return CaseRow{}, fmt.Errorf("scan case result: %w", err)
	}
	c.Status = harness.Status(status)
	return c, nil
}
