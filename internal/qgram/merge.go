package qgram

import "sort"

// Posting is a single (NameID, Frequency) entry in an inverted list or a
// merged result: Frequency is how many times the associated q-gram occurs in
// that name's q-gram sequence.
type Posting struct {
	NameID    int
	Frequency int
}

// PostingList is a sequence of [Posting] values, strictly ascending by
// NameID within one list (the invariant the index builder maintains).
type PostingList []Posting

// MergeStats records counters for one [Merge] call: how many lists were
// merged and how many postings were scanned in total.
type MergeStats struct {
	ListsMerged    int
	ElementsMerged int
}

// Merge aggregates lists into a single [PostingList] sorted ascending by
// NameID, summing frequencies for any NameID that appears in more than one
// input list. Empty inputs and empty lists are permitted; the result is
// empty when every input is empty.
func Merge(lists []PostingList) (PostingList, MergeStats) {
	stats := MergeStats{ListsMerged: len(lists)}

	total := 0
	for _, l := range lists {
		total += len(l)
	}
	stats.ElementsMerged = total
	if total == 0 {
		return nil, stats
	}

	all := make(PostingList, 0, total)
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].NameID < all[j].NameID })

	merged := make(PostingList, 0, len(all))
	for _, p := range all {
		if n := len(merged); n > 0 && merged[n-1].NameID == p.NameID {
			merged[n-1].Frequency += p.Frequency
			continue
		}
		merged = append(merged, p)
	}
	return merged, stats
}
