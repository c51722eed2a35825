// Package charts renders the dashboard's metric charts as PNG images.
package charts

import (
	"sort"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ColorBy selects the record attribute that decides a bar's colour.
type ColorBy string

const (
	ColorByVideo     ColorBy = "Video"
	ColorByAlgorithm ColorBy = "Algorithm"
	ColorByJobsite   ColorBy = "Jobsite"
)

// ColorModes lists the colour groupings offered by the dashboard.
var ColorModes = []ColorBy{ColorByVideo, ColorByAlgorithm, ColorByJobsite}

// ParseColorBy falls back to ColorByVideo for unknown input.
func ParseColorBy(s string) ColorBy {
	for _, m := range ColorModes {
		if string(m) == s {
			return m
		}
	}
	return ColorByVideo
}

// Key returns the grouping value of r. Jobsite is the record's primary tag.
func (c ColorBy) Key(r ape.Record) string {
	switch c {
	case ColorByAlgorithm:
		return r.Algorithm
	case ColorByJobsite:
		return r.Tag
	default:
		return r.Video
	}
}

var paletteHex = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

var palette = func() []drawing.Color {
	out := make([]drawing.Color, len(paletteHex))
	for i, h := range paletteHex {
		out[i] = drawing.ColorFromHex(h)
	}
	return out
}()

// LegendEntry maps one group value to its colour.
type LegendEntry struct {
	Label string
	Hex   string
	color drawing.Color
}

// Legend assigns palette colours to the sorted distinct group values of t.
// The same table and mode always produce the same assignment, so charts and
// the page legend agree.
func Legend(t ape.Table, by ColorBy) []LegendEntry {
	seen := make(map[string]struct{})
	var keys []string
	for _, r := range t {
		k := by.Key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]LegendEntry, len(keys))
	for i, k := range keys {
		c := palette[i%len(palette)]
		out[i] = LegendEntry{Label: k, Hex: "#" + paletteHex[i%len(paletteHex)], color: c}
	}
	return out
}

func legendColors(entries []LegendEntry) map[string]drawing.Color {
	m := make(map[string]drawing.Color, len(entries))
	for _, e := range entries {
		m[e.Label] = e.color
	}
	return m
}

func subtagColor(subtag string) drawing.Color {
	return palette[ape.SubtagRank(subtag)%len(palette)]
}
