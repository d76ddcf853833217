package automaton

import (
	"fmt"
	"io"
)

// ExportDOT prints a Graphviz representation of d to w. Dead states are
// skipped, matching the pretty-printer's own dead-state suppression;
// this is supplemental visual-debugging tooling, not part of the
// minimizer's data contract, ported from the teacher's own
// ExportDOT for regex-derived automata to this package's matrix-based
// DFA.
func ExportDOT(w io.Writer, d *DFA) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")

	for s := 1; s <= d.NStates; s++ {
		if d.IsDead(int32(s)) {
			continue
		}
		shape := "circle"
		if d.IsAccept(int32(s)) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", s-1, shape)
		for j := 1; j <= d.NAB; j++ {
			t := d.Transitions[s][j]
			if t <= 0 || d.IsDead(t) {
				continue
			}
			fmt.Fprintf(w, "    q%d -> q%d [label=%q];\n", s-1, t-1, d.Alphabet[j-1])
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", d.InitState-1)
	fmt.Fprintln(w, "}")
}
