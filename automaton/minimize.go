package automaton

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Minimize runs the full pipeline of spec.md §4.4 on in, returning a
// freshly allocated, minimal DFA: seed the partition, refine to a
// fixpoint, compress into class representatives, then mark dead states
// on the (smaller) compressed result. in is read-only and is never
// mutated.
//
// Every step runs unconditionally; there are no early exits. Re-running
// Minimize on the same input is guaranteed to return a byte-identical
// DFA (same transition matrix, accept list and initial state) since
// find/union/refine/compress are all deterministic functions of their
// inputs — see spec.md §5 and §8.3.
func Minimize(in *DFA) (*DFA, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("automaton: cannot minimize: %w", err)
	}

	rep := make([]int32, in.NStates+1)
	initPartition(in.NStates, in.Attrib, rep)

	for refine(in, rep) {
	}

	out := compress(in, rep)
	markDead(out)
	return out, nil
}

// Fingerprint returns a blake2b-256 digest of d's sizes, initial state,
// per-state attributes and transition matrix, in a canonical byte
// encoding; d.Accepts itself is not hashed. Two
// calls on structurally identical DFAs (same NStates, NAB, transitions,
// attributes, InitState) always produce the same fingerprint, and the
// determinism test in minimize_test.go checks that minimizing the same
// input twice yields the same fingerprint — a cheap proxy for spec.md
// §8.3 without diffing full matrices in test output.
func Fingerprint(d *DFA) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on an oversized key, and we pass
		// none; a failure here is a library-contract violation, not a
		// reachable runtime condition.
		panic(fmt.Sprintf("automaton: blake2b.New256: %v", err))
	}
	var buf [8]byte
	putUint := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	putUint(int64(d.NStates))
	putUint(int64(d.NAB))
	putUint(int64(d.InitState))
	for s := 1; s <= d.NStates; s++ {
		putUint(int64(d.Attrib[s]))
		for j := 1; j <= d.NAB; j++ {
			putUint(int64(d.Transitions[s][j]))
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DumpPartition prints the live equivalence classes of rep against d,
// one line per class: the class representative's external id followed
// by the external ids of its other members. This is the direct
// analogue of the reference implementation's DEBUG-only dump_state,
// kept here as a first-class (if unexported-by-default-usage) function
// exercised by the CLI's -debug-partition flag rather than gated behind
// a build tag, since Go doesn't share C's cheap #ifdef-out-of-the-binary
// convenience and the function is small enough to always compile in.
func DumpPartition(w io.Writer, d *DFA, rep []int32) {
	for i := int32(1); i <= int32(d.NStates); i++ {
		if find(i, rep) != i {
			continue
		}
		fmt.Fprintf(w, "%d", i-1)
		for j := int32(1); j <= int32(d.NStates); j++ {
			if j != i && find(j, rep) == i {
				fmt.Fprintf(w, " %d", j-1)
			}
		}
		fmt.Fprintln(w)
	}
}
