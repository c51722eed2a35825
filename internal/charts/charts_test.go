package charts

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func chartTable() ape.Table {
	return ape.Table{
		{Algorithm: "ORB", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(1.2)},
		{Algorithm: "VINS", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(0.8)},
		{Algorithm: "ORB", Tag: "SEA", Subtag: "mp4_high", Video: "vid2", RMSE: f64(2.4)},
		{Algorithm: "VINS", Tag: "SEA", Subtag: "mp4_high", Video: "vid2", RMSE: f64(1.9)},
		{Algorithm: "VINS", Tag: "SEA", Subtag: "mp4_high", Video: "vid3"},
	}
}

func TestRenderBarProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	err := RenderBar(&buf, chartTable(), BarOptions{Metric: ape.MetricRMSE, Subtag: "mp4_low", ColorBy: ColorByAlgorithm, YMax: 3})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, barHeight, img.Bounds().Dy())
	assert.Equal(t, 480, img.Bounds().Dx())
}

func TestRenderBarEmptyFacetIsPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	err := RenderBar(&buf, chartTable(), BarOptions{Metric: ape.MetricStd, Subtag: "mp4_low", ColorBy: ColorByVideo})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, barHeight, img.Bounds().Dy())
}

func TestRenderBoxProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBox(&buf, chartTable(), ape.MetricRMSE))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, boxHeight, img.Bounds().Dy())
}

func TestRenderBoxSingleSubtag(t *testing.T) {
	tables := map[string]ape.Table{
		"one value": {
			{Algorithm: "ORB", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(2)},
		},
		"two values": {
			{Algorithm: "ORB", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(1)},
			{Algorithm: "VINS", Tag: "NWC", Subtag: "mp4_low", Video: "vid1", RMSE: f64(2)},
		},
	}
	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderBox(&buf, table, ape.MetricRMSE))
			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, boxHeight, img.Bounds().Dy())
		})
	}
}

func TestRenderBoxEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBox(&buf, nil, ape.MetricMax))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestYMaxFor(t *testing.T) {
	assert.InDelta(t, 2.64, YMaxFor(chartTable(), ape.MetricRMSE), 1e-9)
	assert.Equal(t, 1.0, YMaxFor(chartTable(), ape.MetricMean))
	assert.Equal(t, 1.0, YMaxFor(nil, ape.MetricRMSE))
}

func TestLegendIsDeterministic(t *testing.T) {
	legend := Legend(chartTable(), ColorByJobsite)
	require.Len(t, legend, 2)
	assert.Equal(t, "NWC", legend[0].Label)
	assert.Equal(t, "#636efa", legend[0].Hex)
	assert.Equal(t, "SEA", legend[1].Label)
	assert.Equal(t, legend, Legend(chartTable(), ColorByJobsite))
}

func TestParseColorBy(t *testing.T) {
	assert.Equal(t, ColorByAlgorithm, ParseColorBy("Algorithm"))
	assert.Equal(t, ColorByJobsite, ParseColorBy("Jobsite"))
	assert.Equal(t, ColorByVideo, ParseColorBy("bogus"))
	assert.Equal(t, "SEA", ColorByJobsite.Key(chartTable()[2]))
}

func TestJitterStaysInsideBox(t *testing.T) {
	assert.Equal(t, 0.0, jitter(0, 1))
	for i := 0; i < 5; i++ {
		j := jitter(i, 5)
		assert.LessOrEqual(t, j, boxHalfWidth)
		assert.GreaterOrEqual(t, j, -boxHalfWidth)
	}
}

func TestPlaceholderSize(t *testing.T) {
	img := Placeholder(200, 80, "Image preview not available")
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	img = Placeholder(0, 0, "")
	assert.Equal(t, 1, img.Bounds().Dx())
}

func TestPlaceholderWrapsNarrowText(t *testing.T) {
	img := Placeholder(100, 120, "Image preview not available")
	bg := img.At(0, 0)

	first, last := -1, -1
	for y := 0; y < 120; y++ {
		for x := 0; x < 100; x++ {
			if img.At(x, y) != bg {
				if first < 0 {
					first = y
				}
				last = y
				break
			}
		}
	}
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, last-first, 13)
}
