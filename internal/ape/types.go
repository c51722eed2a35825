// internal/ape/types.go
// Package ape turns absolute pose error (APE) result files into a flat table of
// per-run metric records and provides the filtering, ranking and preview lookups
// the dashboard is built on.
package ape

import (
	"fmt"
	"strings"
)

// GroundTruthMarker identifies reference algorithm entries. Any entry whose
// algorithm name contains it is excluded from every view.
const GroundTruthMarker = "groundTruth"

// AllAlgorithms is the filter sentinel that disables algorithm narrowing.
const AllAlgorithms = "All algorithms"

// Record is one run of one algorithm on one video.
type Record struct {
	Algorithm string   `json:"algorithm"`
	Tag       string   `json:"tag"`
	Subtag    string   `json:"subtag"`
	Video     string   `json:"video"`
	RMSE      *float64 `json:"rmse"`
	Mean      *float64 `json:"mean"`
	Median    *float64 `json:"median"`
	Std       *float64 `json:"std"`
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
	PlotFile  string   `json:"plot_pdf"`
}

// Table is the ordered set of records built from one load of the results file.
// Operations on a Table never modify it; they return new slices.
type Table []Record

// Metric names one of the six statistics carried by a Record.
type Metric int

const (
	MetricRMSE Metric = iota
	MetricMean
	MetricMedian
	MetricStd
	MetricMin
	MetricMax
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricRMSE, MetricMean, MetricMedian, MetricStd, MetricMin, MetricMax}

var metricNames = [...]string{"RMSE", "Mean", "Median", "Std", "Min", "Max"}

// Name returns the column name used for the metric in tables, charts and CSV.
func (m Metric) Name() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

func (m Metric) String() string { return m.Name() }

// ParseMetric resolves a metric name case-insensitively.
func ParseMetric(name string) (Metric, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range metricNames {
		if strings.EqualFold(n, trimmed) {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

// Value returns the record's value for m, or nil when the record has none.
func (r Record) Value(m Metric) *float64 {
	switch m {
	case MetricRMSE:
		return r.RMSE
	case MetricMean:
		return r.Mean
	case MetricMedian:
		return r.Median
	case MetricStd:
		return r.Std
	case MetricMin:
		return r.Min
	case MetricMax:
		return r.Max
	default:
		return nil
	}
}
