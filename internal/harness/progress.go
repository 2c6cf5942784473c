package harness

import (
	"fmt"
	"io"
)

// progress prints "[done/total] pct%" after each case. On a terminal the
// line is rewritten in place; otherwise one line is printed per case.
type progress struct {
	w       io.Writer
	total   int
	inPlace bool
	dirty   bool
}

func newProgress(w io.Writer, total int) *progress {
	return &progress{w: w, total: total, inPlace: isTerminal(w)}
}

func (p *progress) step(done int) {
	pct := 100.0
	if p.total > 0 {
		pct = float64(done) * 100 / float64(p.total)
	}
	line := printer.Sprintf("[%d/%d] %.1f%%", done, p.total, pct)
	if p.inPlace {
		fmt.Fprintf(p.w, "\r%s", line)
		p.dirty = true
		return
	}
	fmt.Fprintln(p.w, line)
}

func (p *progress) finish() {
	if p.dirty {
		fmt.Fprintln(p.w)
		p.dirty = false
	}
}
