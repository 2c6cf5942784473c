package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/percregress/internal/sim"
)

// ErrScratch wraps failures to prepare the scratch directory.
var ErrScratch = errors.New("scratch directory")

// Scratch is the ephemeral directory artifacts are exchanged through.
type Scratch struct {
	dir    string
	closed bool
}

// OpenScratch creates dir (and parents) if absent and empties it. The
// returned handle must be closed, which removes the directory.
func OpenScratch(dir string) (*Scratch, error) {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == ".." || clean == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: refusing to use %q", ErrScratch, dir)
	}

	abs, err := filepath.Abs(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScratch, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScratch, err)
	}

	s := &Scratch{dir: abs}
	if err := s.Clear(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the absolute scratch path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path joins name onto the scratch directory.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// ArtifactPaths returns the artifact locations for the given file names.
func (s *Scratch) ArtifactPaths(dat, perc string) sim.ArtifactPaths {
	return sim.ArtifactPaths{Dat: s.Path(dat), Perc: s.Path(perc)}
}

// Clear removes everything inside the directory so an artifact left by the
// previous case cannot be mistaken for output of the next.
func (s *Scratch) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScratch, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("%w: %v", ErrScratch, err)
		}
	}
	return nil
}

// Close removes the scratch directory. It is safe to call more than once.
func (s *Scratch) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("%w: remove: %v", ErrScratch, err)
	}
	return nil
}
