package main

import (
	"io"
	"sort"

	"golang.org/x/text/message"

	"github.com/opd-ai/go-piecerng"
)

// maxListedLoops caps the loop table unless --all is given.
const maxListedLoops = 20

// newPrinter returns a printer that groups digits in large counts.
func newPrinter() *message.Printer {
	return message.NewPrinter(message.MatchLanguage("en"))
}

// pieceColumns is the order counts are reported in.
var pieceColumns = piecerng.OrientationIDs

func writeSequence(w io.Writer, seed piecerng.Seed, seq []piecerng.Piece, counts bool) {
	p := newPrinter()
	p.Fprintf(w, "%s\n", piecerng.FormatPieces(seq))
	if !counts {
		return
	}
	c := piecerng.PieceCounts(seq)
	p.Fprintf(w, "seed %s, %d pieces\n", seed, len(seq))
	for _, piece := range pieceColumns {
		p.Fprintf(w, "  %s %6d\n", piece, c.Of(piece))
	}
}

func writeExtremes(w io.Writer, x piecerng.Extremes) {
	p := newPrinter()
	p.Fprintf(w, "scanned %d seeds, %d pieces each\n", x.Seeds, x.Length)
	row := func(label string, e piecerng.Extreme) {
		if !e.Found {
			p.Fprintf(w, "%-8s -\n", label)
			return
		}
		p.Fprintf(w, "%-8s %s %6d\n", label, e.Seed, e.Count)
	}
	row("most I", x.MostI)
	row("least I", x.LeastI)
	row("most O", x.MostO)
}

// loopSummary is one row of the loop report.
type loopSummary struct {
	id    piecerng.CanonicalState
	size  int
	seeds int
}

// summarizeLoops orders loops by seed count, largest first, then by id.
func summarizeLoops(r *piecerng.Result) []loopSummary {
	counts := r.SeedsByLoop()
	rows := make([]loopSummary, 0, len(r.Loops))
	for _, id := range r.LoopIDs() {
		rows = append(rows, loopSummary{id: id, size: r.Loops[id].Len(), seeds: counts[id]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].seeds > rows[j].seeds })
	return rows
}

func writeResult(w io.Writer, r *piecerng.Result, all bool) {
	p := newPrinter()
	rows := summarizeLoops(r)

	var longest uint32
	for _, sr := range r.Seeds {
		longest = max(longest, sr.StepsToCycle)
	}
	p.Fprintf(w, "%d seeds, %d loops, longest lead-in %d steps\n", len(r.Seeds), len(rows), longest)
	p.Fprintf(w, "%-18s %10s %12s\n", "loop", "states", "seeds")

	shown := rows
	if !all && len(shown) > maxListedLoops {
		shown = shown[:maxListedLoops]
	}
	for _, row := range shown {
		p.Fprintf(w, "%-18s %10d %12d\n", row.id, row.size, row.seeds)
	}
	if rest := len(rows) - len(shown); rest > 0 {
		p.Fprintf(w, "... %d more (use --all)\n", rest)
	}
}

func writeSeedResult(w io.Writer, seed piecerng.Seed, sr piecerng.SeedResult, loop *piecerng.Loop) {
	p := newPrinter()
	p.Fprintf(w, "seed %s (canonical %s)\n", seed, seed.Canonical())
	p.Fprintf(w, "  steps to cycle %d\n", sr.StepsToCycle)
	p.Fprintf(w, "  loop           %s\n", sr.LoopID)
	p.Fprintf(w, "  entry index    %d\n", sr.EntryIndex)
	if loop != nil {
		p.Fprintf(w, "  loop states    %d\n", loop.Len())
		p.Fprintf(w, "  loop pieces    %s\n", abbreviate(piecerng.FormatPieces(loop.Pieces()), 64))
	}
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
