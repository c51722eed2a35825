// internal/ape/aggregate.go
package ape

import (
	"fmt"
	"math"
	"sort"
)

// SummaryRow is one algorithm's ranking entry.
type SummaryRow struct {
	Algorithm string   `json:"algorithm"`
	MeanRMSE  *float64 `json:"meanRmse"`
	Count     int      `json:"count"`
	RMSECount int      `json:"rmseCount"`
}

// Summarize groups t by algorithm and ranks the groups by mean RMSE, lowest
// first. Missing RMSE values are left out of the mean; a group without any RMSE
// has no mean and sorts last.
func Summarize(t Table) []SummaryRow {
	type acc struct {
		sum   float64
		n     int
		count int
	}
	groups := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range t {
		g, ok := groups[r.Algorithm]
		if !ok {
			g = &acc{}
			groups[r.Algorithm] = g
			order = append(order, r.Algorithm)
		}
		g.count++
		if r.RMSE != nil {
			g.sum += *r.RMSE
			g.n++
		}
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, name := range order {
		g := groups[name]
		row := SummaryRow{Algorithm: name, Count: g.count, RMSECount: g.n}
		if g.n > 0 {
			mean := g.sum / float64(g.n)
			row.MeanRMSE = &mean
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].MeanRMSE, rows[j].MeanRMSE
		switch {
		case a == nil && b == nil:
			return rows[i].Algorithm < rows[j].Algorithm
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return rows[i].Algorithm < rows[j].Algorithm
		}
	})
	return rows
}

// MetricRange returns the smallest and largest present value of m in t. ok is
// false when t holds no value for m.
func MetricRange(t Table, m Metric) (minValue, maxValue float64, ok bool) {
	minValue, maxValue = math.Inf(1), math.Inf(-1)
	for _, r := range t {
		v := r.Value(m)
		if v == nil {
			continue
		}
		ok = true
		minValue = math.Min(minValue, *v)
		maxValue = math.Max(maxValue, *v)
	}
	if !ok {
		return 0, 0, false
	}
	return minValue, maxValue, true
}

// Highlight classifies a cell against the table's extremes.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightMin
	HighlightMax
)

// HighlightFor marks v as the best (minimum) or worst (maximum) value. The
// minimum wins when both coincide.
func HighlightFor(v *float64, minValue, maxValue float64) Highlight {
	switch {
	case v == nil:
		return HighlightNone
	case *v == minValue:
		return HighlightMin
	case *v == maxValue:
		return HighlightMax
	default:
		return HighlightNone
	}
}

// BoxSummary holds the five-number summary drawn by a box plot.
type BoxSummary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// BoxStats computes the five-number summary of values using linear
// interpolation between order statistics. ok is false for empty input.
func BoxStats(values []float64) (BoxSummary, bool) {
	if len(values) == 0 {
		return BoxSummary{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return BoxSummary{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// SubtagValues is the set of present values of one metric within one subtag.
type SubtagValues struct {
	Subtag string
	Values []float64
}

// GroupValues collects the present values of m per subtag, in subtag order.
// Subtags without any value are omitted.
func GroupValues(t Table, m Metric) []SubtagValues {
	bySubtag := make(map[string][]float64)
	for _, r := range t {
		if v := r.Value(m); v != nil {
			bySubtag[r.Subtag] = append(bySubtag[r.Subtag], *v)
		}
	}
	out := make([]SubtagValues, 0, len(bySubtag))
	for _, s := range t.Subtags() {
		if vals, ok := bySubtag[s]; ok {
			out = append(out, SubtagValues{Subtag: s, Values: vals})
		}
	}
	return out
}

// ylgn is the sequential yellow to green colour scale, light to dark.
var ylgn = [][3]float64{
	{255, 255, 229}, {247, 252, 185}, {217, 240, 163}, {173, 221, 142}, {120, 198, 121},
	{65, 171, 93}, {35, 132, 67}, {0, 104, 55}, {0, 69, 41},
}

// GradientColor maps v within [minValue, maxValue] onto the yellow-green scale
// and returns the background colour plus a readable text colour, both as hex.
// A degenerate range maps to the light end.
func GradientColor(v, minValue, maxValue float64) (background, text string) {
	t := 0.0
	if span := maxValue - minValue; span > 0 && !math.IsNaN(v) {
		t = math.Max(0, math.Min(1, (v-minValue)/span))
	}
	pos := t * float64(len(ylgn)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Min(float64(lo+1), float64(len(ylgn)-1)))
	frac := pos - float64(lo)

	var rgb [3]float64
	for i := range rgb {
		rgb[i] = ylgn[lo][i] + (ylgn[hi][i]-ylgn[lo][i])*frac
	}
	background = fmt.Sprintf("#%02x%02x%02x", int(math.Round(rgb[0])), int(math.Round(rgb[1])), int(math.Round(rgb[2])))
	text = "#000000"
	if relativeLuminance(rgb) < 0.408 {
		text = "#f1f1f1"
	}
	return background, text
}

func relativeLuminance(rgb [3]float64) float64 {
	lin := func(c float64) float64 {
		c /= 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(rgb[0]) + 0.7152*lin(rgb[1]) + 0.0722*lin(rgb[2])
}
