package web

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/archive"
	"github.com/mitsiuTrimble/CV-dashboard/internal/charts"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
)

type option struct {
	Value    string
	Selected bool
}

type summaryCell struct {
	Algorithm  string
	MeanRMSE   string
	Count      int
	Background string
	Text       string
}

type metricCell struct {
	Text  string
	Class string
}

type metricRow struct {
	Algorithm string
	Tag       string
	Subtag    string
	Video     string
	Cells     []metricCell
	PlotFile  string
}

type facet struct {
	Subtag string
	URL    string
}

type metricTab struct {
	Name   string
	ID     string
	Active bool
	Facets []facet
	BoxURL string
}

type colorChoice struct {
	Mode    charts.ColorBy
	URL     string
	Checked bool
}

type previewCard struct {
	Algorithm   string
	Video       string
	Subtag      string
	Tag         string
	RMSE        string
	ImageURL    string
	DownloadURL string
}

type pagination struct {
	Page    int
	Pages   int
	Total   int
	PrevURL string
	NextURL string
}

type dashboardData struct {
	Title         string
	DataPath      string
	Algorithms    []option
	Tags          []option
	Subtags       []option
	Search        string
	Summary       []summaryCell
	CSVURL        string
	Tabs          []metricTab
	ColorChoices  []colorChoice
	Legend        []charts.LegendEntry
	MetricNames   []string
	Rows          []metricRow
	RecordCount   int
	Previews      []previewCard
	PreviewSearch string
	Pagination    pagination
	PreviewHidden []hiddenField
	PlotsReady    bool
	PlotsDir      string
	PreviewsDir   string
	ZipURL        string
}

type hiddenField struct {
	Name  string
	Value string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	state := parseViewState(t, r.URL.Query())
	data := s.buildDashboard(t, state)

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		logging.LogEvent("[SERVE] dashboard render failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) buildDashboard(t ape.Table, state viewState) dashboardData {
	f := state.Filter
	filtered := f.Apply(t)
	choices := ape.NarrowByTagsAndAlgorithm(t, f).Subtags()

	data := dashboardData{
		Title:         "APE Metrics Dashboard",
		DataPath:      s.cfg.ResultsPath(),
		Algorithms:    options(append([]string{ape.AllAlgorithms}, t.Algorithms()...), []string{f.Algorithm}),
		Tags:          options(t.Tags(), f.Tags),
		Subtags:       options(choices, f.Subtags),
		Search:        f.Search,
		Summary:       summaryCells(ape.Summarize(filtered)),
		CSVURL:        csvURL(f),
		Legend:        charts.Legend(filtered, state.Color),
		RecordCount:   len(filtered),
		PreviewSearch: state.PreviewSearch,
		PlotsDir:      s.cfg.PlotsDirectory(),
		PreviewsDir:   s.cfg.PreviewsDirectory(),
		ZipURL:        "/download/plots.zip",
		PlotsReady:    archive.HasEntries(s.cfg.PlotsDirectory()),
	}

	facetSubtags := filtered.Subtags()
	for _, m := range ape.Metrics {
		tab := metricTab{
			Name:   m.Name(),
			ID:     "metric-" + m.Name(),
			Active: m == state.Metric,
			BoxURL: boxChartURL(f, m),
		}
		for _, st := range facetSubtags {
			tab.Facets = append(tab.Facets, facet{Subtag: st, URL: barChartURL(f, m, st, state.Color)})
		}
		data.Tabs = append(data.Tabs, tab)
		data.MetricNames = append(data.MetricNames, m.Name())
	}
	for _, mode := range charts.ColorModes {
		data.ColorChoices = append(data.ColorChoices, colorChoice{
			Mode:    mode,
			URL:     state.link(paramColor, string(mode)),
			Checked: mode == state.Color,
		})
	}

	data.Rows = metricRows(ape.SortForDisplay(filtered))

	previews := ape.SortForDisplay(ape.SearchAlgorithmOrVideo(filtered, state.PreviewSearch))
	pageRecords, page := paginate(previews, state.Page, s.cfg.PageSize())
	if page.Page > 1 {
		page.PrevURL = state.link(paramPage, strconv.Itoa(page.Page-1))
	}
	if page.Page < page.Pages {
		page.NextURL = state.link(paramPage, strconv.Itoa(page.Page+1))
	}
	data.Pagination = page
	data.Previews = previewCards(ape.ResolvePreviews(pageRecords, s.cfg.PreviewsDirectory()))

	// The preview search form resubmits the rest of the view state.
	base := state.values()
	base.Del(paramPreviewSearch)
	base.Del(paramPage)
	data.PreviewHidden = hiddenFields(base)
	return data
}

func options(values, selected []string) []option {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	out := make([]option, len(values))
	for i, v := range values {
		_, ok := set[v]
		out[i] = option{Value: v, Selected: ok}
	}
	return out
}

func summaryCells(rows []ape.SummaryRow) []summaryCell {
	lo, hi, seen := 0.0, 0.0, false
	for _, row := range rows {
		if row.MeanRMSE == nil {
			continue
		}
		v := *row.MeanRMSE
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}

	out := make([]summaryCell, len(rows))
	for i, row := range rows {
		cell := summaryCell{Algorithm: row.Algorithm, Count: row.Count}
		if row.MeanRMSE != nil {
			cell.MeanRMSE = formatFixed(row.MeanRMSE, 4)
			cell.Background, cell.Text = ape.GradientColor(*row.MeanRMSE, lo, hi)
		}
		out[i] = cell
	}
	return out
}

func metricRows(t ape.Table) []metricRow {
	lo, hi, ok := ape.MetricRange(t, ape.MetricRMSE)
	rows := make([]metricRow, len(t))
	for i, r := range t {
		row := metricRow{Algorithm: r.Algorithm, Tag: r.Tag, Subtag: r.Subtag, Video: r.Video, PlotFile: r.PlotFile}
		for _, m := range ape.Metrics {
			cell := metricCell{Text: formatFixed(r.Value(m), 4)}
			if m == ape.MetricRMSE && ok {
				switch ape.HighlightFor(r.RMSE, lo, hi) {
				case ape.HighlightMin:
					cell.Class = "cell-min"
				case ape.HighlightMax:
					cell.Class = "cell-max"
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		rows[i] = row
	}
	return rows
}

// paginate returns the page'th slice of size records, clamping page into range.
func paginate(t ape.Table, page, size int) (ape.Table, pagination) {
	if size <= 0 {
		size = len(t)
	}
	pages := 1
	if size > 0 && len(t) > 0 {
		pages = (len(t) + size - 1) / size
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := min(start+size, len(t))
	if start > end {
		start = end
	}
	return t[start:end], pagination{Page: page, Pages: pages, Total: len(t)}
}

func previewCards(items []ape.Previewed) []previewCard {
	out := make([]previewCard, len(items))
	for i, it := range items {
		card := previewCard{
			Algorithm: it.Algorithm,
			Video:     it.Video,
			Subtag:    it.Subtag,
			Tag:       it.Tag,
			RMSE:      formatFixed(it.RMSE, 3),
		}
		if it.Preview != "" {
			name := url.PathEscape(it.PlotFile + ape.PreviewSuffix)
			card.ImageURL = "/previews/" + name
			card.DownloadURL = "/previews/" + name + "?download=1"
		}
		out[i] = card
	}
	return out
}

func hiddenFields(q url.Values) []hiddenField {
	var out []hiddenField
	for _, key := range []string{paramApplied, paramAlgorithm, paramTag, paramSubtag, paramSearch, paramColor, paramMetric} {
		for _, v := range q[key] {
			out = append(out, hiddenField{Name: key, Value: v})
		}
	}
	return out
}

func formatFixed(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}
