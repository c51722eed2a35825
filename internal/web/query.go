package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/charts"
)

// Query parameter names shared by the page, chart and download links.
const (
	paramAlgorithm     = "algorithm"
	paramTag           = "tag"
	paramSubtag        = "subtag"
	paramSearch        = "search"
	paramApplied       = "applied"
	paramColor         = "color"
	paramMetric        = "metric"
	paramPreviewSearch = "psearch"
	paramPage          = "page"
	paramFacet         = "facet"
)

// viewState is everything the dashboard keeps in its query string.
type viewState struct {
	Filter        ape.Filter
	Color         charts.ColorBy
	Metric        ape.Metric
	PreviewSearch string
	Page          int
}

// parseFilter reads the filter from q. Until the form has been submitted
// (applied=1) missing multi-selects fall back to every value; afterwards an
// empty selection stays empty. Subtags are limited to those still offered by
// the tag and algorithm narrowed view.
func parseFilter(t ape.Table, q url.Values) ape.Filter {
	applied := q.Get(paramApplied) == "1"

	f := ape.Filter{
		Algorithm: strings.TrimSpace(q.Get(paramAlgorithm)),
		Search:    strings.TrimSpace(q.Get(paramSearch)),
	}
	if f.Algorithm == "" {
		f.Algorithm = ape.AllAlgorithms
	}

	f.Tags = t.Tags()
	if applied {
		f.Tags = keep(q[paramTag], f.Tags)
	}

	choices := ape.NarrowByTagsAndAlgorithm(t, f).Subtags()
	f.Subtags = choices
	if applied {
		f.Subtags = keep(q[paramSubtag], choices)
	}
	return f
}

func parseViewState(t ape.Table, q url.Values) viewState {
	v := viewState{
		Filter:        parseFilter(t, q),
		Color:         charts.ParseColorBy(q.Get(paramColor)),
		PreviewSearch: strings.TrimSpace(q.Get(paramPreviewSearch)),
		Page:          1,
	}
	if m, err := ape.ParseMetric(q.Get(paramMetric)); err == nil {
		v.Metric = m
	}
	if p, err := strconv.Atoi(q.Get(paramPage)); err == nil && p > 1 {
		v.Page = p
	}
	return v
}

// keep returns the members of allowed that appear in selected, in allowed's order.
func keep(selected, allowed []string) []string {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(selected))
	for _, a := range allowed {
		if _, ok := set[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

func filterValues(f ape.Filter) url.Values {
	q := url.Values{}
	q.Set(paramApplied, "1")
	q.Set(paramAlgorithm, f.Algorithm)
	for _, tag := range f.Tags {
		q.Add(paramTag, tag)
	}
	for _, s := range f.Subtags {
		q.Add(paramSubtag, s)
	}
	if f.Search != "" {
		q.Set(paramSearch, f.Search)
	}
	return q
}

func (v viewState) values() url.Values {
	q := filterValues(v.Filter)
	q.Set(paramColor, string(v.Color))
	q.Set(paramMetric, v.Metric.Name())
	if v.PreviewSearch != "" {
		q.Set(paramPreviewSearch, v.PreviewSearch)
	}
	if v.Page > 1 {
		q.Set(paramPage, strconv.Itoa(v.Page))
	}
	return q
}

// link renders the page URL for v with some parameters replaced.
func (v viewState) link(overrides ...string) string {
	q := v.values()
	for i := 0; i+1 < len(overrides); i += 2 {
		q.Set(overrides[i], overrides[i+1])
	}
	return "/?" + q.Encode()
}

func barChartURL(f ape.Filter, m ape.Metric, subtag string, color charts.ColorBy) string {
	q := filterValues(f)
	q.Set(paramFacet, subtag)
	q.Set(paramColor, string(color))
	return "/charts/bar/" + url.PathEscape(m.Name()) + ".png?" + q.Encode()
}

func boxChartURL(f ape.Filter, m ape.Metric) string {
	return "/charts/box/" + url.PathEscape(m.Name()) + ".png?" + filterValues(f).Encode()
}

func csvURL(f ape.Filter) string {
	return "/download/csv?" + filterValues(f).Encode()
}
