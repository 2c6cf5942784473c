// Command percregress captures and replays golden snapshots of the
// percolation simulation.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/percregress/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
