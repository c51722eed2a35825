// internal/tui/tables_test.go
package tui

import (
	"strings"
	"testing"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	out := RenderSummary([]ape.SummaryRow{
		{Algorithm: "VINS", MeanRMSE: f64(0.5), Count: 1, RMSECount: 1},
		{Algorithm: "ORB", MeanRMSE: f64(2), Count: 2, RMSECount: 2},
		{Algorithm: "DSO", Count: 1},
	})

	assert.Contains(t, out, "Mean RMSE")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "2.0000")
	assert.Contains(t, out, "n/a")
	assert.Less(t, strings.Index(out, "VINS"), strings.Index(out, "DSO"))
}

func TestRenderRecords(t *testing.T) {
	out := RenderRecords(browseTable())

	for _, want := range []string{"Algorithm", "Subtag", "Median", "harbor", "0.500", "3.000"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "n/a", formatMean(nil))
	assert.Equal(t, "1.2346", formatMean(f64(1.23456)))
	assert.Equal(t, "", formatMetric(nil))
	assert.Equal(t, "1.235", formatMetric(f64(1.23456)))
}
