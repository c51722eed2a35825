// internal/tui/tables.go
package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
)

var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	minStyle    = cellStyle.Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0"))
	maxStyle    = cellStyle.Background(lipgloss.Color("215")).Foreground(lipgloss.Color("0"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// RenderSummary draws the mean RMSE ranking. Mean cells are shaded on the
// same yellow-green scale as the web dashboard.
func RenderSummary(rows []ape.SummaryRow) string {
	lo, hi, seen := 0.0, 0.0, false
	for _, row := range rows {
		if row.MeanRMSE == nil {
			continue
		}
		if !seen || *row.MeanRMSE < lo {
			lo = *row.MeanRMSE
		}
		if !seen || *row.MeanRMSE > hi {
			hi = *row.MeanRMSE
		}
		seen = true
	}

	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = []string{
			row.Algorithm,
			formatMean(row.MeanRMSE),
			strconv.Itoa(row.Count),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Algorithm", "Mean RMSE", "Records").
		Rows(body...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			if c == 1 && r >= 0 && r < len(rows) && rows[r].MeanRMSE != nil {
				bg, fg := ape.GradientColor(*rows[r].MeanRMSE, lo, hi)
				return cellStyle.Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
			}
			return cellStyle
		}).
		String()
}

// RenderRecords draws the metrics table with the lowest and highest RMSE
// highlighted.
func RenderRecords(t ape.Table) string {
	lo, hi, ok := ape.MetricRange(t, ape.MetricRMSE)

	headers := []string{"Algorithm", "Tag", "Subtag", "Video"}
	for _, m := range ape.Metrics {
		headers = append(headers, m.Name())
	}

	body := make([][]string, len(t))
	for i, r := range t {
		row := []string{r.Algorithm, r.Tag, r.Subtag, r.Video}
		for _, m := range ape.Metrics {
			row = append(row, formatMetric(r.Value(m)))
		}
		body[i] = row
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(body...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			if c == 4 && ok && r >= 0 && r < len(t) {
				switch ape.HighlightFor(t[r].RMSE, lo, hi) {
				case ape.HighlightMin:
					return minStyle
				case ape.HighlightMax:
					return maxStyle
				}
			}
			return cellStyle
		}).
		String()
}

func formatMean(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
