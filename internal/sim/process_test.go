package sim

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/percregress/internal/params"
	"github.com/roach88/percregress/internal/testutil"
)

func scratchPaths(t *testing.T) ArtifactPaths {
	t.Helper()
	dir := t.TempDir()
	return ArtifactPaths{Dat: filepath.Join(dir, "map.dat"), Perc: filepath.Join(dir, "map.pgm")}
}

func TestProcess_ExecuteSuccess(t *testing.T) {
	paths := scratchPaths(t)
	v := params.Vector{Grid: params.Some(5), Seed: params.Some(42.0), Rho: params.Some(0.5), MaxClusters: params.Some(10)}

	res, err := stubProcess().Execute(context.Background(), v, paths, true)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)

	art, err := ReadArtifacts(paths)
	require.NoError(t, err)
	assert.NotEmpty(t, art.Dat)
	assert.True(t, bytes.HasPrefix(art.Perc, []byte("P2\n5 5\n10\n")))
}

func TestProcess_Deterministic(t *testing.T) {
	v := params.Vector{Grid: params.Some(15), Seed: params.Some(1.5), Rho: params.Some(0.25), MaxClusters: params.Some(-1)}
	p := stubProcess()

	run := func() Artifacts {
		paths := scratchPaths(t)
		res, err := p.Execute(context.Background(), v, paths, true)
		require.NoError(t, err)
		require.True(t, res.Success)
		art, err := ReadArtifacts(paths)
		require.NoError(t, err)
		return art
	}

	first, second := run(), run()
	assert.Equal(t, first.Dat, second.Dat)
	assert.Equal(t, first.Perc, second.Perc)
}

func TestProcess_BoundaryRho(t *testing.T) {
	for _, rho := range []float64{0, 1} {
		paths := scratchPaths(t)
		v := params.Vector{Grid: params.Some(4), Rho: params.Some(rho)}

		res, err := stubProcess().Execute(context.Background(), v, paths, true)
		require.NoError(t, err)
		assert.True(t, res.Success, "rho=%v", rho)

		_, err = ReadArtifacts(paths)
		assert.NoError(t, err)
	}
}

func TestProcess_NonZeroExit(t *testing.T) {
	res, err := stubProcess(testutil.StubFailEnv+"=1").Execute(context.Background(), params.Vector{}, scratchPaths(t), true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.TimedOut)
}

func TestProcess_SilentSuppressesOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := stubProcess()
	p.Stdout = &stdout
	p.Stderr = &stderr

	_, err := p.Execute(context.Background(), params.Vector{Grid: params.Some(2)}, scratchPaths(t), true)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	_, err = p.Execute(context.Background(), params.Vector{Grid: params.Some(2)}, scratchPaths(t), false)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Parameters are")
}

func TestProcess_SilentStillReportsFailure(t *testing.T) {
	var stderr bytes.Buffer
	p := stubProcess()
	p.Stderr = &stderr

	res, err := p.Execute(context.Background(), params.Vector{Grid: params.Some(-3)}, scratchPaths(t), true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, stderr.String())
}

func TestProcess_ProgramNotFound(t *testing.T) {
	p := NewProcess(filepath.Join(t.TempDir(), "missing.out"))

	_, err := p.Execute(context.Background(), params.Vector{}, scratchPaths(t), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProgramNotFound))

	assert.ErrorIs(t, p.Check(), ErrProgramNotFound)
}

func TestProcess_ProgramNotExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.out")
	require.NoError(t, os.WriteFile(path, []byte("not a program"), 0644))

	assert.ErrorIs(t, NewProcess(path).Check(), ErrProgramNotFound)
}

func TestProcess_CheckFindsStub(t *testing.T) {
	assert.NoError(t, stubProcess().Check())
}

func TestProcess_Timeout(t *testing.T) {
	p := stubProcess(testutil.StubSleepEnv + "=10s")
	p.Timeout = 100 * time.Millisecond

	res, err := p.Execute(context.Background(), params.Vector{}, scratchPaths(t), true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.TimedOut)
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stubProcess().Execute(ctx, params.Vector{}, scratchPaths(t), true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadArtifacts_Missing(t *testing.T) {
	paths := scratchPaths(t)
	res, err := stubProcess(testutil.StubSkipPercEnv+"=1").Execute(context.Background(), params.Vector{Grid: params.Some(3)}, paths, true)
	require.NoError(t, err)
	require.True(t, res.Success)

	_, err = ReadArtifacts(paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "perc")
}
