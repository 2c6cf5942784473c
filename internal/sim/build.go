package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// Builder produces the simulation binary before a verify run.
type Builder interface {
	Build(ctx context.Context) error
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) error

// Build calls f.
func (f BuilderFunc) Build(ctx context.Context) error {
	return f(ctx)
}

// MakeBuilder runs `make -C Dir`.
type MakeBuilder struct {
	// Make is the make executable; empty means "make".
	Make string

	// Dir is the directory holding the Makefile.
	Dir string

	// Silent discards make's output; otherwise it goes to Stdout/Stderr.
	Silent bool
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// Build runs make and wraps any failure in ErrBuildFailed.
func (b *MakeBuilder) Build(ctx context.Context) error {
	makeBin := b.Make
	if makeBin == "" {
		makeBin = "make"
	}

	cmd := exec.CommandContext(ctx, makeBin, "-C", b.Dir)
	if !b.Silent {
		cmd.Stdout = b.Stdout
		cmd.Stderr = b.Stderr
	}

	logger := b.Logger
	if logger == nil {
		logger = discardLogger
	}
	logger.Info("building simulation", "make", makeBin, "dir", b.Dir)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s -C %s: %v", ErrBuildFailed, makeBin, b.Dir, err)
	}
	logger.Info("compilation successful", "dir", b.Dir)
	return nil
}
