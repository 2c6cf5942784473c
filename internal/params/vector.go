package params

import (
	"fmt"
	"strconv"
)

// SentinelText is how an unset field is rendered in descriptions.
const SentinelText = "default"

// Vector is one combination of simulation inputs.
// Vectors are values; nothing mutates one after construction.
type Vector struct {
	Grid        Opt[int]     `json:"grid"`
	Seed        Opt[float64] `json:"seed"`
	Rho         Opt[float64] `json:"rho"`
	MaxClusters Opt[int]     `json:"max_clusters"`
}

// Description is a human-readable rendering of all four fields, e.g.
// "(g=10, s=1564, r=0.5, m=-1)". Two vectors share a description only if
// their fields format identically.
func (v Vector) Description() string {
	return fmt.Sprintf("(g=%s, s=%s, r=%s, m=%s)",
		formatInt(v.Grid), formatFloat(v.Seed), formatFloat(v.Rho), formatInt(v.MaxClusters))
}

func (v Vector) String() string {
	return v.Description()
}

// Flags returns the command-line flags for every set field, in g, s, r, m
// order. Unset fields produce no flag at all.
func (v Vector) Flags() []string {
	var flags []string
	if g, ok := v.Grid.Get(); ok {
		flags = append(flags, "-g", strconv.Itoa(g))
	}
	if s, ok := v.Seed.Get(); ok {
		flags = append(flags, "-s", FormatNumber(s))
	}
	if r, ok := v.Rho.Get(); ok {
		flags = append(flags, "-r", FormatNumber(r))
	}
	if m, ok := v.MaxClusters.Get(); ok {
		flags = append(flags, "-m", strconv.Itoa(m))
	}
	return flags
}

// FormatNumber renders f as the shortest plain decimal that round-trips,
// never in exponent form (1000000, not 1e+06).
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(o Opt[int]) string {
	if v, ok := o.Get(); ok {
		return strconv.Itoa(v)
	}
	return SentinelText
}

func formatFloat(o Opt[float64]) string {
	if v, ok := o.Get(); ok {
		return FormatNumber(v)
	}
	return SentinelText
}
