package automaton

import "github.com/bits-and-blooms/bitset"

// markDead tags every state that is either unreachable from d.InitState
// or cannot reach any accepting state as AttribDead. Accepting states
// are exempt only from the cannot-reach-accept pass: an accepting state
// that d.InitState cannot reach is tagged dead like any other and is
// removed from d.Accepts, so every id left there is still accepting.
//
// The connectivity matrix is one bitset.BitSet row per state rather
// than a dense [][]bool: connected[j] holding bit i means state j can
// reach state i. This turns the innermost loop of Warshall's algorithm
// ("for k, if connected[i][k] then connected[j][k] = true") into a
// single InPlaceUnion of two rows, which is both the idiomatic
// bitset.BitSet usage and a straightforward line-for-line reading of
// the reference dead.c.
//
// Loop ordering follows dead.c's t_closure exactly: i outer, j middle
// (guarded by connected[j][i]), k folded into the row union. Per
// spec.md §4.3/§9 this ordering must be documented since a test
// snapshotting intermediate connectivity would otherwise diverge from
// a k-i-j (k outermost) implementation; the final closure is identical
// either way.
func markDead(d *DFA) {
	n := d.NStates
	connected := make([]*bitset.BitSet, n+1)
	for s := 1; s <= n; s++ {
		row := bitset.New(uint(n + 1))
		row.Set(uint(s))
		for j := 1; j <= d.NAB; j++ {
			if t := d.Transitions[s][j]; t > 0 {
				row.Set(uint(t))
			}
		}
		connected[s] = row
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if connected[j].Test(uint(i)) {
				connected[j].InPlaceUnion(connected[i])
			}
		}
	}

	init := int(d.InitState)
	for s := 1; s <= n; s++ {
		if !connected[init].Test(uint(s)) {
			d.Attrib[s] = AttribDead
		}
	}

	for s := 1; s <= n; s++ {
		attrib := d.Attrib[s]
		if attrib == AttribDead || attrib == AttribAccept {
			continue
		}
		reachesAccept := false
		for _, a := range d.Accepts {
			if connected[s].Test(uint(a)) {
				reachesAccept = true
				break
			}
		}
		if !reachesAccept {
			d.Attrib[s] = AttribDead
		}
	}

	kept := d.Accepts[:0]
	for _, a := range d.Accepts {
		if d.Attrib[a] == AttribAccept {
			kept = append(kept, a)
		}
	}
	d.Accepts = kept
}
