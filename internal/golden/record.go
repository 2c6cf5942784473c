package golden

import (
	"github.com/roach88/percregress/internal/params"
	"github.com/roach88/percregress/internal/sim"
)

// TestCase is the in-memory form of one case for a generate or verify cycle.
type TestCase struct {
	// Index is the case ordinal; -1 when a record's file name is not numeric.
	Index int

	Description string
	Params      params.Vector

	// Paths are runtime artifact locations (absolute or scratch-relative).
	Paths sim.ArtifactPaths

	// Dat and Perc are the expected artifact bytes.
	Dat  []byte
	Perc []byte

	// Source is the record file a loaded case came from.
	Source string
}

// Record is the on-disk document.
type Record struct {
	Description string       `json:"description"`
	Params      RecordParams `json:"params"`
	Dat         string       `json:"dat"`
	Perc        string       `json:"perc"`
}

// RecordParams is the parameter vector plus bare artifact file names.
type RecordParams struct {
	params.Vector
	DatFile  string `json:"dat_file"`
	PercFile string `json:"perc_file"`
}
