package ape

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Filter is the dashboard's selection. Tags and Subtags are sets; an empty set
// matches nothing. An empty Algorithm behaves like AllAlgorithms and an empty
// Search matches every video.
type Filter struct {
	Algorithm string   `json:"algorithm"`
	Tags      []string `json:"tags"`
	Subtags   []string `json:"subtags"`
	Search    string   `json:"search"`
}

// DefaultFilter selects everything in t: all algorithms, every tag and every
// subtag present, no search.
func DefaultFilter(t Table) Filter {
	return Filter{
		Algorithm: AllAlgorithms,
		Tags:      t.Tags(),
		Subtags:   t.Subtags(),
	}
}

func (f Filter) allAlgorithms() bool {
	return f.Algorithm == "" || f.Algorithm == AllAlgorithms
}

// Apply narrows t by tags, then algorithm, then subtags, then video search.
func (f Filter) Apply(t Table) Table {
	narrowed := NarrowByTagsAndAlgorithm(t, f)
	subtags := toSet(f.Subtags)
	matcher := newMatcher(f.Search)

	out := make(Table, 0, len(narrowed))
	for _, r := range narrowed {
		if _, ok := subtags[r.Subtag]; !ok {
			continue
		}
		if !matcher.match(r.Video) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// NarrowByTagsAndAlgorithm applies only the tag and algorithm stages. Subtag
// choices offered to the user are computed from this view.
func NarrowByTagsAndAlgorithm(t Table, f Filter) Table {
	tags := toSet(f.Tags)
	out := make(Table, 0, len(t))
	for _, r := range t {
		if _, ok := tags[r.Tag]; !ok {
			continue
		}
		if !f.allAlgorithms() && r.Algorithm != f.Algorithm {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SearchAlgorithmOrVideo keeps records whose algorithm or video contains q,
// ignoring case.
func SearchAlgorithmOrVideo(t Table, q string) Table {
	matcher := newMatcher(q)
	out := make(Table, 0, len(t))
	for _, r := range t {
		if matcher.match(r.Algorithm) || matcher.match(r.Video) {
			out = append(out, r)
		}
	}
	return out
}

// Algorithms returns the sorted distinct algorithm names.
func (t Table) Algorithms() []string {
	return distinct(t, func(r Record) string { return r.Algorithm }, func(a, b string) bool { return a < b })
}

// Tags returns the sorted distinct primary tags.
func (t Table) Tags() []string {
	return distinct(t, func(r Record) string { return r.Tag }, func(a, b string) bool { return a < b })
}

// Subtags returns the distinct subtags in subtag order.
func (t Table) Subtags() []string {
	return distinct(t, func(r Record) string { return r.Subtag }, lessSubtag)
}

func distinct(t Table, key func(Record) string, less func(a, b string) bool) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// matcher does case-folded substring matching. A Caser keeps state, so each
// matcher owns its own.
type matcher struct {
	caser  cases.Caser
	needle string
}

func newMatcher(q string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.needle = m.caser.String(q)
	return m
}

func (m *matcher) match(s string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.caser.String(s), m.needle)
}
