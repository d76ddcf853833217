package automaton

import "golang.org/x/exp/slices"

// compress builds a fresh DFA from in using the final partition rep,
// one output state per equivalence class. The canonical representative
// of a class is its smallest member, i.e. the first member met during
// the ascending scan. The Union-Find tree root is usually a different
// member (union's tie-break leaves the second member of a class on
// top), so classes are looked up by root but numbered and copied from
// their smallest member; the initial state's class therefore always
// becomes new id 1.
//
// Representatives are assigned new ids in ascending scan order over
// their own internal id, 1, 2, 3, ...: map[root] = new for each class
// root, pam[new] = the class's smallest member. Sink and
// non-representative lookups always go through find() first.
func compress(in *DFA, rep []int32) *DFA {
	nstates := in.NStates
	repOf := make([]int32, nstates+1)
	mapOldToNew := make([]int32, nstates+1)
	pamNewToOld := make([]int32, 0, nstates+1)
	pamNewToOld = append(pamNewToOld, 0) // pam[0] = 0

	repCount := int32(0)
	for i := int32(1); i <= int32(nstates); i++ {
		repOf[i] = find(i, rep)
		if mapOldToNew[repOf[i]] == 0 {
			repCount++
			mapOldToNew[repOf[i]] = repCount
			pamNewToOld = append(pamNewToOld, i)
		}
	}

	out := New(int(repCount), in.NAB)
	out.Alphabet = slices.Clone(in.Alphabet)

	for newID := int32(1); newID <= repCount; newID++ {
		oldID := pamNewToOld[newID]
		for j := 1; j <= in.NAB; j++ {
			t := in.Transitions[oldID][j]
			if t > 0 {
				t = mapOldToNew[repOf[t]]
			}
			out.Transitions[newID][j] = t
		}
		out.Attrib[newID] = in.Attrib[oldID]
		if out.Attrib[newID] == AttribAccept {
			out.Accepts = append(out.Accepts, newID)
		}
	}

	out.InitState = mapOldToNew[repOf[in.InitState]]
	return out
}
