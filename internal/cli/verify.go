package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/percregress/internal/harness"
	"github.com/roach88/percregress/internal/ledger"
	"github.com/roach88/percregress/internal/sim"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Ledger string // SQLite run ledger; empty disables recording
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay both golden corpora against a fresh build",
		Long: `Build the simulation, then replay every record of the automated and
expected corpora and compare the dataset and map files byte for byte.

Every case runs even after failures. One line is printed per case,
followed by a summary.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (build failure, missing program, scratch directory)

Examples:
  percregress verify
  percregress verify --ledger runs.db
  percregress verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the run in a SQLite ledger at this path")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	env, err := newRunEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	r := env.runner(opts.RootOptions)
	if env.cfg.Make != "" {
		r.Builder = &sim.MakeBuilder{
			Make:   env.cfg.Make,
			Dir:    env.cfg.BuildDir,
			Silent: !opts.Verbose,
			Stdout: env.out.errWriter(),
			Stderr: env.out.errWriter(),
			Logger: env.logger,
		}
	}

	report, err := r.Verify(ctx, env.corpora())
	if err != nil {
		return env.fail("E_VERIFY", "verify aborted", err)
	}

	if opts.Ledger != "" {
		if err := recordRun(ctx, opts.Ledger, report, env); err != nil {
			return env.fail("E_LEDGER", "failed to record run", err)
		}
	}

	if env.out.isJSON() {
		resp := runResponse(report, !report.OK(), "E_VERIFY_FAILED",
			fmt.Sprintf("%d case(s) failed", report.Failed))
		resp.RunID = report.RunID
		if err := env.out.Respond(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", report.Passed, report.Failed, report.Total)
		if report.OK() {
			fmt.Fprintln(w, "✓ All tests passed")
		}
	}

	if !report.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", report.Failed))
	}
	return nil
}

func recordRun(ctx context.Context, path string, report *harness.VerifyReport, env *runEnv) error {
	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			env.logger.Error("error closing ledger", "error", closeErr)
		}
	}()

	if err := l.RecordRun(ctx, report); err != nil {
		return err
	}
	env.logger.Info("run recorded", "ledger", path, "run_id", report.RunID)
	return nil
}
