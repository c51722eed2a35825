package charts

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	boxHalfWidth = 0.28
	boxHeight    = 400
)

// RenderBox draws a box plot of metric m per subtag, with every observation
// overlaid as a dot. Subtags follow the fixed quality order.
func RenderBox(w io.Writer, t ape.Table, m ape.Metric) error {
	groups := ape.GroupValues(t, m)
	width := len(groups)*140 + 160
	if width < 480 {
		width = 480
	}
	if len(groups) == 0 {
		return WritePlaceholder(w, width, boxHeight, fmt.Sprintf("No %s values to plot", m.Name()))
	}

	lo, hi, _ := ape.MetricRange(t, m)
	yMin := math.Min(0, lo)
	yMax := hi * 1.1
	if yMax <= yMin {
		yMax = yMin + 1
	}

	// The outermost ticks set the x-range: half a slot past each end box.
	xMax := float64(len(groups)) + 0.5
	var series []chart.Series
	ticks := make([]chart.Tick, 0, len(groups)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, g := range groups {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Subtag})
		box, ok := ape.BoxStats(g.Values)
		if !ok {
			continue
		}
		series = append(series, boxSeries(x, box, g)...)
	}
	ticks = append(ticks, chart.Tick{Value: xMax})

	ch := chart.Chart{
		Title:      fmt.Sprintf("Box Plot of %s by Subtag", m.Name()),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		Width:      width,
		Height:     boxHeight,
		XAxis: chart.XAxis{
			Name:  "Subtag",
			Range: &chart.ContinuousRange{Min: 0.5, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  m.Name(),
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s box chart: %w", m.Name(), err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// boxSeries outlines one box, its median, both whiskers and the raw points.
func boxSeries(x float64, box ape.BoxSummary, g ape.SubtagValues) []chart.Series {
	col := subtagColor(g.Subtag)
	line := chart.Style{StrokeColor: col, StrokeWidth: 2}
	left, right := x-boxHalfWidth, x+boxHalfWidth

	out := []chart.Series{
		chart.ContinuousSeries{
			Name:    g.Subtag,
			Style:   line,
			XValues: []float64{left, right, right, left, left},
			YValues: []float64{box.Q1, box.Q1, box.Q3, box.Q3, box.Q1},
		},
		chart.ContinuousSeries{
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 3},
			XValues: []float64{left, right},
			YValues: []float64{box.Median, box.Median},
		},
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x, x},
			YValues: []float64{box.Min, box.Q1},
		},
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x, x},
			YValues: []float64{box.Q3, box.Max},
		},
	}

	xs := make([]float64, len(g.Values))
	for i := range g.Values {
		xs[i] = x + jitter(i, len(g.Values))
	}
	out = append(out, chart.ContinuousSeries{
		Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: col.WithAlpha(160)},
		XValues: xs,
		YValues: append([]float64(nil), g.Values...),
	})
	return out
}

// jitter spreads n points deterministically across the box width.
func jitter(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	span := 2 * boxHalfWidth * 0.8
	return -span/2 + span*float64(i)/float64(n-1)
}
