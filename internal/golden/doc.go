// Package golden persists and loads golden records.
//
// A golden record is one JSON document per test case:
//
//	{
//	  "description": "(g=10, s=1564, r=0.5, m=-1)",
//	  "params": {
//	    "grid": 10,
//	    "seed": 1564,
//	    "rho": 0.5,
//	    "max_clusters": -1,
//	    "dat_file": "map.dat",
//	    "perc_file": "map.pgm"
//	  },
//	  "dat": "...",
//	  "perc": "..."
//	}
//
// Unset parameters are stored as null. Artifact file names are stored bare:
// Persist strips the directory and Load re-prefixes the name with the current
// run's scratch directory. No other package rewrites these paths.
//
// Records are validated on load against the closed #Record definition in
// record.cue, so a record with missing artifacts, unknown fields, or values
// outside their domain is rejected with ErrMalformedRecord.
//
// File names are zero-padded ordinals (00042.json) so lexicographic order is
// numeric order; List returns them in that order.
package golden
