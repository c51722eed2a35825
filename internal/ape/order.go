package ape

import "sort"

// SubtagOrder is the fixed quality ladder of the secondary tag, lowest first.
var SubtagOrder = []string{"mp4_verylow", "mp4_low", "mp4_mid", "mp4_medium", "mp4_high"}

var subtagRanks = func() map[string]int {
	ranks := make(map[string]int, len(SubtagOrder))
	for i, s := range SubtagOrder {
		ranks[s] = i
	}
	return ranks
}()

// SubtagRank returns the position of s in SubtagOrder. Unrecognised values rank
// after every known subtag.
func SubtagRank(s string) int {
	if r, ok := subtagRanks[s]; ok {
		return r
	}
	return len(SubtagOrder)
}

// lessSubtag orders by rank, then lexically so unknown subtags stay deterministic.
func lessSubtag(a, b string) bool {
	ra, rb := SubtagRank(a), SubtagRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// SortBySubtag returns a copy of t stably ordered by subtag rank.
func SortBySubtag(t Table) Table {
	out := clone(t)
	sort.SliceStable(out, func(i, j int) bool {
		return lessSubtag(out[i].Subtag, out[j].Subtag)
	})
	return out
}

// SortForDisplay returns a copy of t ordered by algorithm, tag, video and then
// subtag rank, the order of the dashboard's metrics table.
func SortForDisplay(t Table) Table {
	out := clone(t)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}
		if a.Video != b.Video {
			return a.Video < b.Video
		}
		return lessSubtag(a.Subtag, b.Subtag)
	})
	return out
}

func clone(t Table) Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}
