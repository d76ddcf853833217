package automaton

// buildDFA constructs a DFA from external (0-based) transition and
// accept-state data, converting to the package's internal (1-based,
// sink-0) numbering the way automatonio.Parse does. trans[s][j] == -1
// means no transition, matching spec.md §6.1's input grammar.
func buildDFA(alphabet []rune, trans [][]int, accepts []int) *DFA {
	nstates := len(trans)
	nab := len(alphabet)
	d := New(nstates, nab)
	copy(d.Alphabet, alphabet)
	for s := 0; s < nstates; s++ {
		for j := 0; j < nab; j++ {
			t := trans[s][j]
			if t < 0 {
				d.SetTransition(s+1, j+1, 0)
			} else {
				d.SetTransition(s+1, j+1, int32(t+1))
			}
		}
	}
	for _, a := range accepts {
		d.MarkAccept(int32(a + 1))
	}
	return d
}

// externalTransitions renders d's transition matrix back into external
// (0-based, -1-for-sink) form for test comparisons.
func externalTransitions(d *DFA) [][]int {
	out := make([][]int, d.NStates)
	for s := 1; s <= d.NStates; s++ {
		row := make([]int, d.NAB)
		for j := 1; j <= d.NAB; j++ {
			t := d.Transitions[s][j]
			if t == 0 {
				row[j-1] = -1
			} else {
				row[j-1] = int(t) - 1
			}
		}
		out[s-1] = row
	}
	return out
}

func externalAccepts(d *DFA) []int {
	out := make([]int, len(d.Accepts))
	for i, a := range d.Accepts {
		out[i] = int(a) - 1
	}
	return out
}
