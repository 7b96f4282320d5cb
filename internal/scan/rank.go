package scan

import "sort"

// Rank filters and orders scanned entries: entries that are not hidden are
// dropped when hiddenOnly is set, entries smaller than minSize are dropped,
// the remainder is sorted by size descending with ties broken by path
// ascending, and the result is truncated to topN. A topN of zero or less
// returns the full filtered sequence.
//
// Rank does not modify its input and is deterministic for a given input.
func Rank(entries []Entry, hiddenOnly bool, minSize int64, topN int) []Entry {
	ranked := make([]Entry, 0, len(entries))

	for _, entry := range entries {
		if hiddenOnly && !entry.Hidden {
			continue
		}

		if entry.Size < minSize {
			continue
		}

		ranked = append(ranked, entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Size != ranked[j].Size {
			return ranked[i].Size > ranked[j].Size
		}

		return ranked[i].Path < ranked[j].Path
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
