package piecerng

import (
	"fmt"
	"io"
	"os"
)

// debugEnabled controls whether step tracing is enabled via PIECERNG_DEBUG env var
var debugEnabled = os.Getenv("PIECERNG_DEBUG") == "1"

// traceOut is where trace lines go when tracing is enabled.
var traceOut io.Writer = os.Stderr

// traceLog outputs a debug message if tracing is enabled
func traceLog(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(traceOut, "[TRACE] "+format+"\n", args...)
	}
}

// traceStep outputs one transition
func traceStep(i int, st Step) {
	if !debugEnabled {
		return
	}
	branch := "primary"
	if st.Rerolled {
		branch = "reroll"
	}
	traceLog("%4d %s roll=%04X cand=%d %-7s -> %s (%s)",
		i, st.From.Canonical(), st.Roll, st.Candidate, branch, st.To.Canonical(), st.Piece)
}

// Trace returns the full record of the first n spawns of seed. When
// PIECERNG_DEBUG=1 each step is also written to stderr.
func Trace(t *Table, seed Seed, n int) []Step {
	steps := make([]Step, 0, max(n, 0))
	s := StateFromSeed(seed)
	traceLog("========== seed %s ==========", seed)
	for i := 0; i < n; i++ {
		st := step(t, s)
		traceStep(i, st)
		steps = append(steps, st)
		s = st.To
	}
	return steps
}
