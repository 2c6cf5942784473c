package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenScratch_CreatesAndRemoves(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "tmp_output")

	s, err := OpenScratch(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.True(t, filepath.IsAbs(s.Dir()))
	assert.Equal(t, filepath.Join(s.Dir(), "map.dat"), s.Path("map.dat"))

	require.NoError(t, s.Close())
	assert.NoDirExists(t, dir)

	// second close is a no-op
	assert.NoError(t, s.Close())
}

func TestOpenScratch_ClearsExistingContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp_output")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.dat"), []byte("stale"), 0644))

	s, err := OpenScratch(dir)
	require.NoError(t, err)
	defer s.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenScratch_RefusesUnsafeDirs(t *testing.T) {
	for _, dir := range []string{"", ".", "..", "/", "./"} {
		_, err := OpenScratch(dir)
		assert.ErrorIs(t, err, ErrScratch, "dir %q", dir)
	}
}

func TestOpenScratch_Unwritable(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0644))

	_, err := OpenScratch(filepath.Join(parent, "tmp_output"))
	assert.ErrorIs(t, err, ErrScratch)
}

func TestScratch_ArtifactPaths(t *testing.T) {
	s, err := OpenScratch(filepath.Join(t.TempDir(), "tmp_output"))
	require.NoError(t, err)
	defer s.Close()

	p := s.ArtifactPaths("map.dat", "map.pgm")
	assert.Equal(t, s.Path("map.dat"), p.Dat)
	assert.Equal(t, s.Path("map.pgm"), p.Perc)
}
