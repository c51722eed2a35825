package charts

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/util"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	barWidth   = 36
	barSpacing = 10
	barHeight  = 500

	maxLabelRunes = 24
)

// BarOptions describes one facet of the per-subtag bar chart.
type BarOptions struct {
	Metric  ape.Metric
	Subtag  string
	ColorBy ColorBy
	// YMax is the shared upper bound of every facet. Zero or less derives it
	// from the facet itself.
	YMax float64
}

// YMaxFor is the shared y-axis bound for metric m over t: 10% above the largest
// value, or 1 when t has no positive value.
func YMaxFor(t ape.Table, m ape.Metric) float64 {
	_, hi, ok := ape.MetricRange(t, m)
	if !ok || hi <= 0 {
		return 1
	}
	return hi * 1.1
}

// RenderBar draws one bar per record of t in opts.Subtag that has a value for
// the metric, labelled by video and coloured by opts.ColorBy. An empty facet
// renders a placeholder.
func RenderBar(w io.Writer, t ape.Table, opts BarOptions) error {
	legend := Legend(t, opts.ColorBy)
	colors := legendColors(legend)

	var bars []chart.Value
	for _, r := range ape.SortBySubtag(t) {
		if r.Subtag != opts.Subtag {
			continue
		}
		v := r.Value(opts.Metric)
		if v == nil {
			continue
		}
		c := colors[opts.ColorBy.Key(r)]
		bars = append(bars, chart.Value{
			Value: *v,
			Label: util.TruncateRunes(r.Video, maxLabelRunes),
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		})
	}

	width := len(bars)*(barWidth+barSpacing) + 160
	if width < 480 {
		width = 480
	}
	if len(bars) == 0 {
		return WritePlaceholder(w, width, barHeight, fmt.Sprintf("No %s values for %s", opts.Metric.Name(), opts.Subtag))
	}

	yMax := opts.YMax
	if yMax <= 0 {
		yMax = YMaxFor(filterSubtag(t, opts.Subtag), opts.Metric)
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s | Subtag=%s", opts.Metric.Name(), opts.Subtag),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 110}},
		Width:      width,
		Height:     barHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{TextRotationDegrees: 45, FontSize: 8},
		YAxis: chart.YAxis{
			Name:  opts.Metric.Name(),
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s bar chart for %s: %w", opts.Metric.Name(), opts.Subtag, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func filterSubtag(t ape.Table, subtag string) ape.Table {
	out := make(ape.Table, 0, len(t))
	for _, r := range t {
		if r.Subtag == subtag {
			out = append(out, r)
		}
	}
	return out
}
