package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/percregress/internal/golden"
	"github.com/roach88/percregress/internal/params"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the automated golden corpus",
		Long: `Run the simulation for every vector of the parameter grid and record
its outputs into the automated corpus, overwriting existing records.

The program is not built first; build it before generating.

Exit codes:
  0 - Every case recorded
  1 - One or more cases could not be recorded
  2 - Command error (missing program, scratch directory, config)

Examples:
  percregress generate
  percregress generate --config ci.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, cmd)
		},
	}
	return cmd
}

func runGenerate(opts *RootOptions, cmd *cobra.Command) error {
	env, err := newRunEnv(opts, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	grid := params.NewGrid(env.cfg.ParamDomains())
	store := golden.NewStore(env.cfg.AutomatedDir, env.cfg.ScratchDir)
	env.logger.Info("generating golden records", "dir", store.Dir, "total", grid.Total())

	report, err := env.runner(opts).Generate(ctx, grid, store)
	if err != nil {
		return env.fail("E_GENERATE", "generate aborted", err)
	}

	if env.out.isJSON() {
		resp := runResponse(report, !report.OK(), "E_GENERATE_FAILED",
			fmt.Sprintf("%d case(s) not recorded", len(report.Failures)))
		if err := env.out.Respond(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, f := range report.Failures {
			fmt.Fprintf(w, "✗ %s %s\n", f.File, f.Description)
			for _, e := range f.Errors {
				fmt.Fprintf(w, "  %s: %s\n", f.Status, e)
			}
		}
		fmt.Fprintf(w, "Generated %d of %d tests\n", report.Written, report.Total)
	}

	if !report.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) not recorded", len(report.Failures)))
	}
	return nil
}
