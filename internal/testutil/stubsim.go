// Package testutil provides a deterministic stand-in for the percolation
// program so adapter, store, and runner tests can spawn a real child process.
//
// A test binary becomes the stub when StubEnv is set in its environment:
//
//	func TestMain(m *testing.M) {
//	    testutil.MaybeRunStub()
//	    os.Exit(m.Run())
//	}
//
// The test then points the adapter at os.Args[0] with StubEnviron().
package testutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment switches understood by the stub.
const (
	StubEnv         = "PERCREGRESS_STUB_SIM"
	StubFailEnv     = "PERCREGRESS_STUB_FAIL"      // exit 3 without writing
	StubSkipPercEnv = "PERCREGRESS_STUB_SKIP_PERC" // exit 0 without the map file
	StubSaltEnv     = "PERCREGRESS_STUB_SALT"      // perturbs output, simulating a regression
	StubSleepEnv    = "PERCREGRESS_STUB_SLEEP"     // time.Duration to sleep before writing
)

// StubEnviron returns an environment that turns a re-executed test binary
// into the stub, plus any extra KEY=VALUE pairs.
func StubEnviron(extra ...string) []string {
	env := append(os.Environ(), StubEnv+"=1")
	return append(env, extra...)
}

// MaybeRunStub runs the stub and exits if StubEnv is set. Call it first in
// TestMain.
func MaybeRunStub() {
	if os.Getenv(StubEnv) != "1" {
		return
	}
	os.Exit(RunStub(os.Args[1:], os.Stdout, os.Stderr))
}

type stubOptions struct {
	size        int
	seed        float64
	rho         float64
	maxClusters int
	dataFile    string
	percFile    string
}

// RunStub parses getopt-style flags (-g N, -s N, -r F, -m N, -d<path>,
// -p<path>), writes a deterministic dataset and PGM map, and returns the
// process exit code.
func RunStub(args []string, stdout, stderr io.Writer) int {
	opt, err := parseStubArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fmt.Fprintf(stdout, "Parameters are rho=%f, size=%d, seed=%s, data=%s, perc=%s\n",
		opt.rho, opt.size, strconv.FormatFloat(opt.seed, 'f', -1, 64), opt.dataFile, opt.percFile)

	if d, err := time.ParseDuration(os.Getenv(StubSleepEnv)); err == nil {
		time.Sleep(d)
	}
	if os.Getenv(StubFailEnv) == "1" {
		fmt.Fprintln(stderr, "forced failure")
		return 3
	}
	if opt.size < 0 {
		fmt.Fprintf(stderr, "invalid grid size %d\n", opt.size)
		return 1
	}

	cells := fill(opt)
	if err := writeDat(opt, cells); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if os.Getenv(StubSkipPercEnv) == "1" {
		return 0
	}
	if err := writePgm(opt, cells); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func parseStubArgs(args []string) (stubOptions, error) {
	opt := stubOptions{size: 20, seed: 1564, rho: 0.4, maxClusters: -1, dataFile: "map.dat", percFile: "map.pgm"}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			return opt, fmt.Errorf("unexpected argument %q", arg)
		}
		name, value := arg[1], arg[2:]
		if value == "" && name != 'd' && name != 'p' {
			if i+1 >= len(args) {
				return opt, fmt.Errorf("option %c needs a value", name)
			}
			i++
			value = args[i]
		}
		var err error
		switch name {
		case 'g':
			opt.size, err = strconv.Atoi(strings.TrimSpace(value))
		case 's':
			opt.seed, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
		case 'r':
			opt.rho, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
		case 'm':
			opt.maxClusters, err = strconv.Atoi(strings.TrimSpace(value))
		case 'd':
			opt.dataFile = value
		case 'p':
			opt.percFile = value
		default:
			return opt, fmt.Errorf("unknown option: %c", name)
		}
		if err != nil {
			return opt, fmt.Errorf("option %c: %w", name, err)
		}
	}
	return opt, nil
}

// fill marks cells occupied with probability rho using a fixed LCG seeded
// from the seed, so identical options always give identical grids.
func fill(opt stubOptions) [][]int {
	state := uint64(int64(opt.seed*1000)) ^ 0x9e3779b97f4a7c15
	state ^= uint64(len(os.Getenv(StubSaltEnv)))
	next := 1
	cells := make([][]int, opt.size)
	for i := range cells {
		cells[i] = make([]int, opt.size)
		for j := range cells[i] {
			state = state*6364136223846793005 + 1442695040888963407
			if float64(state>>11)/float64(1<<53) < opt.rho {
				cells[i][j] = next
				next++
			}
		}
	}
	return cells
}

func writeDat(opt stubOptions, cells [][]int) error {
	return writeFile(opt.dataFile, func(w *bufio.Writer) {
		for _, row := range cells {
			for _, c := range row {
				fmt.Fprintf(w, " %4d", c)
			}
			fmt.Fprintln(w)
		}
	})
}

func writePgm(opt stubOptions, cells [][]int) error {
	levels := opt.maxClusters
	if levels < 1 {
		levels = 1
	}
	return writeFile(opt.percFile, func(w *bufio.Writer) {
		fmt.Fprintf(w, "P2\n%d %d\n%d\n", opt.size, opt.size, levels)
		for _, row := range cells {
			for _, c := range row {
				colour := 0
				if c > 0 {
					colour = c % (levels + 1)
				}
				fmt.Fprintf(w, " %4d", colour)
			}
			fmt.Fprintln(w)
		}
	})
}

func writeFile(path string, body func(w *bufio.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	body(w)
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
