package params

import "iter"

// Domains lists the candidate values for each axis. Every slice is used as
// given: no validation, filtering, or deduplication.
type Domains struct {
	Grid        []Opt[int]
	Seed        []Opt[float64]
	Rho         []Opt[float64]
	MaxClusters []Opt[int]
}

// NewDomains builds Domains from concrete values, prefixing each axis with
// the unset sentinel.
func NewDomains(grid []int, seed, rho []float64, maxClusters []int) Domains {
	return Domains{
		Grid:        withSentinel(grid),
		Seed:        withSentinel(seed),
		Rho:         withSentinel(rho),
		MaxClusters: withSentinel(maxClusters),
	}
}

// DefaultDomains is the historical grid: degenerate sizes, integer and
// fractional seeds, boundary probabilities, and unbounded clusters (-1).
func DefaultDomains() Domains {
	return NewDomains(
		[]int{0, 1, 2, 5, 10, 15, 25, 50, 100},
		[]float64{1564, 0, 1000000, 1, 0.1, 1.5},
		[]float64{0, 0.00001, 0.1, 0.25, 0.5, 0.99999, 1},
		[]int{-1, 0, 1, 10, 100000},
	)
}

func withSentinel[T any](values []T) []Opt[T] {
	out := make([]Opt[T], 0, len(values)+1)
	out = append(out, Unset[T]())
	for _, v := range values {
		out = append(out, Some(v))
	}
	return out
}

// Grid is the Cartesian product of a Domains value.
type Grid struct {
	domains Domains
}

// NewGrid returns a grid over d. The domain slices are copied.
func NewGrid(d Domains) *Grid {
	return &Grid{domains: Domains{
		Grid:        append([]Opt[int](nil), d.Grid...),
		Seed:        append([]Opt[float64](nil), d.Seed...),
		Rho:         append([]Opt[float64](nil), d.Rho...),
		MaxClusters: append([]Opt[int](nil), d.MaxClusters...),
	}}
}

// Total is the number of vectors All yields.
func (g *Grid) Total() int {
	d := g.domains
	return len(d.Grid) * len(d.Seed) * len(d.Rho) * len(d.MaxClusters)
}

// All yields (ordinal, vector) pairs with grid as the outermost axis and
// max_clusters as the innermost. Ordinals start at zero. Each call replays
// the identical sequence.
func (g *Grid) All() iter.Seq2[int, Vector] {
	d := g.domains
	return func(yield func(int, Vector) bool) {
		i := 0
		for _, gr := range d.Grid {
			for _, s := range d.Seed {
				for _, r := range d.Rho {
					for _, m := range d.MaxClusters {
						v := Vector{Grid: gr, Seed: s, Rho: r, MaxClusters: m}
						if !yield(i, v) {
							return
						}
						i++
					}
				}
			}
		}
	}
}
