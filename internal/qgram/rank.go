package qgram

import "sort"

// Rank orders matches by (PED ascending, Score descending), per spec.md
// §4.G. It is stable with respect to the input order on ties in both keys,
// pure, and idempotent: Rank(Rank(xs)) produces the same order as Rank(xs).
//
// Rank does not mutate matches; it returns a new, sorted slice.
func Rank(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PED != out[j].PED {
			return out[i].PED < out[j].PED
		}
		return out[i].Score > out[j].Score
	})
	return out
}
