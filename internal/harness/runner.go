package harness

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/percregress/internal/sim"
)

// Default artifact file names inside the scratch directory.
const (
	DefaultDatName  = "map.dat"
	DefaultPercName = "map.pgm"
)

// Runner executes generate and verify runs.
type Runner struct {
	// Exec runs the simulation. If it implements sim.Checker the program is
	// checked before any case runs.
	Exec sim.Executor

	// Builder builds the program before a verify run; nil skips the build.
	Builder sim.Builder

	// ScratchDir is created at the start of a run and removed at the end.
	ScratchDir string

	// DatName and PercName are the artifact file names used by Generate.
	DatName  string
	PercName string

	// Out receives progress and per-case lines. Nil discards them.
	Out io.Writer

	Logger *slog.Logger

	// NewRunID returns the ID stamped on a verify report. Defaults to UUIDv7.
	NewRunID func() string
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return io.Discard
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *Runner) runID() string {
	if r.NewRunID != nil {
		return r.NewRunID()
	}
	return uuid.Must(uuid.NewV7()).String()
}

func (r *Runner) artifactNames() (string, string) {
	dat, perc := r.DatName, r.PercName
	if dat == "" {
		dat = DefaultDatName
	}
	if perc == "" {
		perc = DefaultPercName
	}
	return dat, perc
}

func (r *Runner) checkProgram() error {
	if c, ok := r.Exec.(sim.Checker); ok {
		return c.Check()
	}
	return nil
}

// printer formats counts for humans (thousands separators).
var printer = message.NewPrinter(language.English)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
