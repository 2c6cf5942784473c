package sim

import (
	"fmt"
	"os"
)

// Artifacts holds the raw bytes of both output files.
type Artifacts struct {
	Dat  []byte
	Perc []byte
}

// ReadArtifacts reads both output files in full. Call it only after a
// successful run, and before the next run overwrites the same paths.
func ReadArtifacts(paths ArtifactPaths) (Artifacts, error) {
	dat, err := os.ReadFile(paths.Dat)
	if err != nil {
		return Artifacts{}, fmt.Errorf("%w: dat: %w", ErrArtifactMissing, err)
	}
	perc, err := os.ReadFile(paths.Perc)
	if err != nil {
		return Artifacts{}, fmt.Errorf("%w: perc: %w", ErrArtifactMissing, err)
	}
	return Artifacts{Dat: dat, Perc: perc}, nil
}
