package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/percregress/internal/config"
	"github.com/roach88/percregress/internal/golden"
	"github.com/roach88/percregress/internal/harness"
	"github.com/roach88/percregress/internal/sim"
)

// runEnv is what both commands need before a run starts.
type runEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	out    *OutputFormatter
}

func newRunEnv(opts *RootOptions, cmd *cobra.Command) (*runEnv, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env := &runEnv{logger: newLogger(opts, cmd.ErrOrStderr()), out: out}

	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, env.fail("E_CONFIG", "failed to load config", err)
	}
	env.cfg = cfg

	out.VerboseLog("program=%s scratch=%s automated=%s expected=%s",
		cfg.Program, cfg.ScratchDir, cfg.AutomatedDir, cfg.ExpectedDir)
	return env, nil
}

// newLogger configures slog based on the verbose flag.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (e *runEnv) process(opts *RootOptions) *sim.Process {
	p := sim.NewProcess(e.cfg.Program)
	p.Env = opts.Environ
	p.Timeout = e.cfg.Timeout
	p.Stdout = e.out.errWriter()
	p.Stderr = e.out.errWriter()
	p.Logger = e.logger
	return p
}

// runner returns a runner whose per-case output goes to the command output
// in text mode; JSON mode keeps stdout for the response only.
func (e *runEnv) runner(opts *RootOptions) *harness.Runner {
	r := &harness.Runner{
		Exec:       e.process(opts),
		ScratchDir: e.cfg.ScratchDir,
		Logger:     e.logger,
	}
	if !e.out.isJSON() {
		r.Out = e.out.Writer
	}
	return r
}

func (e *runEnv) corpora() []golden.Corpus {
	return []golden.Corpus{
		golden.NewCorpus(golden.CorpusAutomated, e.cfg.AutomatedDir, e.cfg.ScratchDir),
		golden.NewCorpus(golden.CorpusExpected, e.cfg.ExpectedDir, e.cfg.ScratchDir),
	}
}

// signalContext cancels on SIGINT/SIGTERM, which kills a running child.
// Uses the command's context if available (for testing).
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// fail logs the cause and reports an environment-level failure, which
// exits with ExitCommandError.
func (e *runEnv) fail(code, message string, err error) error {
	e.logger.Error(message, "error", err)
	return e.out.Fail(code, message, err)
}
