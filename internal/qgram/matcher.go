package qgram

import (
	"sort"
	"time"
)

// FindMatches implements spec.md §4.F: it fetches the inverted list for each
// q-gram of prefix, merges them, filters by the q-gram overlap threshold
// T = len(prefix) - q*delta, verifies survivors with [PED], and reduces
// multiple per-entity name hits to the single best-PED match.
//
// prefix must already be normalized (see [Normalize]) — FindMatches does not
// normalize its input; behavior on an unnormalized prefix is undefined.
//
// FindMatches returns [ErrInvalidDelta] if delta < 0. A prefix shorter than
// q is not an error: it yields zero matches without fetching any postings.
func (ix *Index) FindMatches(prefix string, delta int) (MatchResult, error) {
	if delta < 0 {
		return MatchResult{}, ErrInvalidDelta
	}
	if len(prefix) < ix.q {
		return MatchResult{}, nil
	}

	grams := QGrams(prefix, ix.q)
	lists := make([]PostingList, 0, len(grams))
	for _, g := range grams {
		if list, ok := ix.invertedLists[g]; ok {
			lists = append(lists, list)
		}
	}

	mergeStart := time.Now()
	merged, mergeStats := Merge(lists)
	mergeDuration := time.Since(mergeStart)

	threshold := len(prefix) - ix.q*delta

	var candidates []Match
	pedStart := time.Now()
	pedCalcs := 0
	for _, p := range merged {
		if p.Frequency < threshold {
			continue
		}
		_, norm, entID := ix.nameByID(p.NameID)
		d := PED(prefix, norm, delta)
		pedCalcs++
		if d <= delta {
			candidates = append(candidates, Match{EntID: entID, PED: d, NameID: p.NameID})
		}
	}
	pedDuration := time.Since(pedStart)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].EntID != candidates[j].EntID {
			return candidates[i].EntID < candidates[j].EntID
		}
		return candidates[i].PED < candidates[j].PED
	})

	best := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if n := len(best); n > 0 && best[n-1].EntID == c.EntID {
			continue
		}
		_, score, _, _ := ix.Entity(c.EntID)
		c.Score = score
		best = append(best, c)
	}

	stats := Stats{
		ListsMerged:    mergeStats.ListsMerged,
		ElementsMerged: mergeStats.ElementsMerged,
		MergeDuration:  mergeDuration.Nanoseconds(),
		PEDCalcs:       pedCalcs,
		PEDCandidates:  len(merged),
		PEDDuration:    pedDuration.Nanoseconds(),
	}
	return MatchResult{Matches: best, Stats: stats}, nil
}

// nameByID returns the surface form, normalized form, and owning ent_id for
// the 1-based name id.
func (ix *Index) nameByID(nameID int) (surface, norm string, entID int) {
	n := ix.names[nameID-1]
	return n.surface, n.norm, n.entID
}
