// Package params models the simulation's parameter space.
//
// A Vector holds the four scalar inputs of the percolation program. Each field
// is an Opt: either an explicit value or the "unset" sentinel, which tells the
// process adapter to omit the flag so the program falls back to its own
// built-in default. "Explicitly zero" and "unset" are distinct states.
//
// A Grid enumerates the Cartesian product of four Domains in a fixed order
// (grid outermost, max_clusters innermost). The total case count is known
// before the first vector is produced:
//
//	g := params.NewGrid(params.DefaultDomains())
//	fmt.Println(g.Total())
//	for i, v := range g.All() {
//	    fmt.Println(i, v.Description())
//	}
package params
