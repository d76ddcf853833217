package automaton

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// siphash keys for the transition-class digest used to bucket states
// before the exact same_transitions comparison below. Fixed, arbitrary
// constants: the digest is only ever used within a single refine call
// to skip comparisons that are certain to fail, never persisted or
// compared across runs, so key stability across versions doesn't
// matter.
const (
	digestK0 = 0x646661756e696f6e
	digestK1 = 0x7061727469746f6e
)

// initPartition seeds rep with two classes: all accepting states in
// one, all non-accepting states in the other. If either category is
// empty, only the other class exists. Mirrors init_partitions in
// partit.c: each later state is Union'd with the first member of its
// category encountered during the ascending scan. By union's tie-break
// the root of a class with two or more members is its second member,
// not its first.
func initPartition(nstates int, attrib []Attrib, rep []int32) {
	for i := 1; i <= nstates; i++ {
		rep[i] = 0
	}
	var acceptRep, otherRep int32
	for i := 1; i <= nstates; i++ {
		s := int32(i)
		if attrib[i] == AttribAccept {
			if acceptRep == 0 {
				acceptRep = s
			} else {
				union(acceptRep, s, rep)
			}
		} else {
			if otherRep == 0 {
				otherRep = s
			} else {
				union(otherRep, s, rep)
			}
		}
	}
}

// sameTransitions reports whether s1 and s2 agree, under the current
// partition rep, on the equivalence class of their transition target
// for every alphabet symbol. cls(0) = 0 (the sink is its own class);
// cls(s>0) = find(s, rep).
func sameTransitions(d *DFA, s1, s2 int32, rep []int32) bool {
	row1, row2 := d.Transitions[s1], d.Transitions[s2]
	for j := 1; j <= d.NAB; j++ {
		t1, t2 := row1[j], row2[j]
		if t1 > 0 {
			t1 = find(t1, rep)
		}
		if t2 > 0 {
			t2 = find(t2, rep)
		}
		if t1 != t2 {
			return false
		}
	}
	return true
}

// transitionDigest computes a fast, order-independent-per-symbol hash
// of a state's transition-class vector under rep, used only to bucket
// candidates for sameTransitions before paying for the exact O(nab)
// comparison. Two states with the same digest are not guaranteed
// equivalent (hash collisions happen); two states with different
// digests are guaranteed not equivalent, so the bucket is a safe
// prefilter, never a source of incorrect merges.
func transitionDigest(d *DFA, s int32, rep []int32) uint64 {
	buf := make([]byte, 8*d.NAB)
	row := d.Transitions[s]
	for j := 1; j <= d.NAB; j++ {
		t := row[j]
		if t > 0 {
			t = find(t, rep)
		}
		binary.LittleEndian.PutUint64(buf[(j-1)*8:], uint64(t))
	}
	return siphash.Hash(digestK0, digestK1, buf)
}

// refine performs one sweep over all current classes of rep, splitting
// each class of size >= 2 into sub-classes such that two states end up
// together iff sameTransitions holds between them under the partition
// as it stands *at the moment each class is visited* — splits earlier
// in the sweep are visible to classes examined later (progressive
// refinement). The sweep visits every id that is the root of a
// multi-member class at the moment it is reached, so the root of a
// sub-class split off earlier in the same sweep is refined in that
// sweep too when its id is higher.
//
// Returns whether any class was split.
func refine(d *DFA, rep []int32) bool {
	nstates := d.NStates
	changed := false

	for r := int32(1); r <= int32(nstates); r++ {
		if rep[r] >= 0 {
			// Not a representative (either a non-root, or a root of a
			// singleton class with rep[r] == 0 — either way, nothing
			// to split): singleton classes are skipped by construction
			// since a singleton root also has rep[r] == 0. A state
			// that was not a root when the sweep began but became the
			// root of a split-off sub-class earlier in this same sweep
			// has rep[r] < 0 and is visited; a bare 0 here means a
			// singleton, correctly skipped.
			continue
		}

		var members []int32
		for i := int32(1); i <= int32(nstates); i++ {
			if find(i, rep) == r {
				members = append(members, i)
			}
		}
		if len(members) < 2 {
			continue
		}

		newRep := make([]int32, nstates+1)
		buckets := make(map[uint64][]int32, len(members))
		unified := make([]bool, nstates+1)

		for _, m := range members {
			digest := transitionDigest(d, m, rep)
			buckets[digest] = append(buckets[digest], m)
		}
		for _, bucket := range buckets {
			for bi := 0; bi < len(bucket)-1; bi++ {
				mi := bucket[bi]
				if unified[mi] {
					continue
				}
				unified[mi] = true
				for bj := bi + 1; bj < len(bucket); bj++ {
					mj := bucket[bj]
					if unified[mj] {
						continue
					}
					if sameTransitions(d, mi, mj, rep) {
						union(mi, mj, newRep)
						unified[mj] = true
					}
				}
			}
		}

		split := false
		for _, m := range members {
			if find(m, rep) != find(m, newRep) {
				split = true
				break
			}
		}
		if split {
			for _, m := range members {
				rep[m] = newRep[m]
			}
			changed = true
		}
	}
	return changed
}
