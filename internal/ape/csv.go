package ape

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVFileName is the download name of the filtered table.
const CSVFileName = "APE_metrics_filtered.csv"

// CSVHeader lists the exported columns.
var CSVHeader = []string{"Algorithm", "Tag", "Subtag", "Video", "RMSE", "Mean", "Median", "Std", "Min", "Max", "Plot PDF"}

// WriteCSV writes t with a header row. Missing values become empty cells.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("unable to write CSV header: %w", err)
	}
	for _, r := range t {
		row := []string{r.Algorithm, r.Tag, r.Subtag, r.Video}
		for _, m := range Metrics {
			row = append(row, FormatValue(r.Value(m)))
		}
		row = append(row, r.PlotFile)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue renders v with the shortest exact representation, or "" for nil.
func FormatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
