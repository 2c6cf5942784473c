package harness

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/percregress/internal/golden"
	"github.com/roach88/percregress/internal/params"
	"github.com/roach88/percregress/internal/sim"
	"github.com/roach88/percregress/internal/testutil"
)

type generateFixture struct {
	scratch string
	store   *golden.Store
	out     *bytes.Buffer
}

func newGenerateFixture(t *testing.T) generateFixture {
	t.Helper()
	root := t.TempDir()
	scratch := filepath.Join(root, "tmp_output")
	return generateFixture{
		scratch: scratch,
		store:   golden.NewStore(filepath.Join(root, "automated"), scratch),
		out:     &bytes.Buffer{},
	}
}

func TestGenerate_PersistsEveryCase(t *testing.T) {
	f := newGenerateFixture(t)
	r := &Runner{Exec: stubProcess(), ScratchDir: f.scratch, Out: f.out}

	report, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 5, report.Written)

	files, err := f.store.List()
	require.NoError(t, err)
	require.Len(t, files, 5)
	assert.Equal(t, "00000.json", filepath.Base(files[0]))
	assert.Equal(t, "00004.json", filepath.Base(files[4]))

	tc, err := f.store.Load(files[2])
	require.NoError(t, err)
	assert.Equal(t, params.Some(3), tc.Params.Grid)
	assert.Equal(t, "(g=3, s=default, r=default, m=default)", tc.Description)
	assert.True(t, bytes.HasPrefix(tc.Perc, []byte("P2\n3 3\n")))

	assert.NoDirExists(t, f.scratch)
}

func TestGenerate_StoresBareArtifactNames(t *testing.T) {
	f := newGenerateFixture(t)
	r := &Runner{Exec: &fakeExec{}, ScratchDir: f.scratch}

	_, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.NoError(t, err)

	data, err := os.ReadFile(f.store.Path(0))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dat_file": "map.dat"`)
	assert.Contains(t, string(data), `"perc_file": "map.pgm"`)
	assert.NotContains(t, string(data), f.scratch)
}

func TestGenerate_ProgressOutput(t *testing.T) {
	f := newGenerateFixture(t)
	r := &Runner{Exec: &fakeExec{}, ScratchDir: f.scratch, Out: f.out}

	_, err := r.Generate(context.Background(), params.NewGrid(params.DefaultDomains()), f.store)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	assert.Equal(t, "Generating a total of 3,360 tests", lines[0])
	assert.Equal(t, "[1/3,360] 0.0%", lines[1])
	assert.Equal(t, "[3,360/3,360] 100.0%", lines[len(lines)-1])
	assert.Len(t, lines, 3361)
}

func TestGenerate_ExecutionFailureContinues(t *testing.T) {
	f := newGenerateFixture(t)
	exec := &fakeExec{fail: func(v params.Vector) bool {
		g, _ := v.Grid.Get()
		return g == 2
	}}
	r := &Runner{Exec: exec, ScratchDir: f.scratch}

	report, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, 4, report.Written)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 1, report.Failures[0].Index)
	assert.Equal(t, StatusExecutionFailure, report.Failures[0].Status)
	assert.Len(t, exec.calls, 5)

	assert.NoFileExists(t, f.store.Path(1))
	assert.FileExists(t, f.store.Path(2))
}

func TestGenerate_ArtifactMissingIsPerCase(t *testing.T) {
	f := newGenerateFixture(t)
	r := &Runner{Exec: stubProcess(testutil.StubSkipPercEnv + "=1"), ScratchDir: f.scratch}

	report, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Written)
	require.Len(t, report.Failures, 5)
	for _, c := range report.Failures {
		assert.Equal(t, StatusArtifactMissing, c.Status)
	}
}

func TestGenerate_ProgramNotFoundAborts(t *testing.T) {
	f := newGenerateFixture(t)
	r := &Runner{Exec: sim.NewProcess("/nonexistent/main.out"), ScratchDir: f.scratch}

	_, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.ErrorIs(t, err, sim.ErrProgramNotFound)
	assert.NoDirExists(t, f.scratch)
	assert.NoDirExists(t, f.store.Dir)
}

func TestGenerate_BoundaryRho(t *testing.T) {
	f := newGenerateFixture(t)
	grid := params.NewGrid(params.Domains{
		Grid:        []params.Opt[int]{params.Some(4)},
		Seed:        []params.Opt[float64]{params.Some(1564.0)},
		Rho:         []params.Opt[float64]{params.Some(0.0), params.Some(1.0)},
		MaxClusters: []params.Opt[int]{params.Some(-1)},
	})
	r := &Runner{Exec: stubProcess(), ScratchDir: f.scratch}

	report, err := r.Generate(context.Background(), grid, f.store)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Written)
}

func TestGenerate_Overwrites(t *testing.T) {
	f := newGenerateFixture(t)
	require.NoError(t, os.MkdirAll(f.store.Dir, 0755))
	require.NoError(t, os.WriteFile(f.store.Path(0), []byte("old"), 0644))

	r := &Runner{Exec: &fakeExec{}, ScratchDir: f.scratch}
	_, err := r.Generate(context.Background(), fiveCaseGrid(), f.store)
	require.NoError(t, err)

	_, err = f.store.Load(f.store.Path(0))
	assert.NoError(t, err)
}

func TestGenerate_CancelledContext(t *testing.T) {
	f := newGenerateFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Exec: stubProcess(), ScratchDir: f.scratch}
	_, err := r.Generate(ctx, fiveCaseGrid(), f.store)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, f.scratch)
}
