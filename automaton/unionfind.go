package automaton

// Union-Find over a caller-provided partition vector.
//
// rep[i] (i = 1..n, 0 unused) holds one of:
//
//   - 0        i is a singleton root (no other members in its class yet)
//   - j > 0    i's parent is element j, in the same equivalence class
//   - -M       i is a root and its equivalence class has M+1 members
//
// This is Tarjan's weighted, path-compressing Union-Find (Sedgewick,
// Algorithms ch. 30), ported from the reference C implementation's
// ufind.c rather than reinvented: the weight convention (-(size-1), not
// -size) and the tie-break direction below are both pinned to that
// source so the arithmetic can be checked line-for-line against it.

// find returns the representative (root) of elem's class, compressing
// the path traversed so every visited node points directly at the root
// on return.
func find(elem int32, rep []int32) int32 {
	i := elem
	for rep[i] > 0 {
		i = rep[i]
	}
	for rep[elem] > 0 {
		next := rep[elem]
		rep[elem] = i
		elem = next
	}
	return i
}

// union merges the classes of a and b. If they already share a root,
// this is a no-op. Otherwise the shallower tree (the one with the less
// negative weight) is attached under the deeper one; on a tie, a's root
// is attached under b's root, matching ufind.c's `rep[j] > rep[i]`
// branch exactly.
func union(a, b int32, rep []int32) {
	i := find(a, rep)
	j := find(b, rep)
	if i == j {
		return
	}
	if rep[j] > rep[i] {
		// j's tree is strictly smaller: attach it under i. Ties take
		// the else branch.
		rep[i] += rep[j] - 1
		rep[j] = i
	} else {
		rep[j] += rep[i] - 1
		rep[i] = j
	}
}
