package web

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/archive"
	"github.com/mitsiuTrimble/CV-dashboard/internal/charts"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
)

const (
	zipFileName        = "all_pdf_plots.zip"
	previewUnavailable = "Image preview not available"
)

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	filtered := ape.SortForDisplay(parseFilter(t, r.URL.Query()).Apply(t))

	var buf bytes.Buffer
	if err := ape.WriteCSV(&buf, filtered); err != nil {
		logging.LogEvent("[SERVE] csv export failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(ape.CSVFileName))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePlotsZip(w http.ResponseWriter, _ *http.Request) {
	dir := s.cfg.PlotsDirectory()
	if !archive.HasEntries(dir) {
		http.Error(w, fmt.Sprintf("No PDF plots available: %s is missing or empty", dir), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := archive.ZipDir(&buf, dir); err != nil {
		logging.LogEvent("[SERVE] zip of %s failed: %v", dir, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(zipFileName))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi routes on RawPath when it is set, leaving the segment escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			http.Error(w, "invalid preview name", http.StatusBadRequest)
			return
		}
		name = unescaped
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		http.Error(w, "invalid preview name", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.PreviewsDirectory(), name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", attachment(name))
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		logging.Debugf("[SERVE] preview %s does not decode: %v", name, err)
		writePNG(w, func(buf *bytes.Buffer) error {
			return charts.WritePlaceholder(buf, 640, 360, previewUnavailable)
		})
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	m, err := ape.ParseMetric(chi.URLParam(r, "metric"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	t, ok := s.table(w)
	if !ok {
		return
	}
	q := r.URL.Query()
	filtered := parseFilter(t, q).Apply(t)
	opts := charts.BarOptions{
		Metric:  m,
		Subtag:  q.Get(paramFacet),
		ColorBy: charts.ParseColorBy(q.Get(paramColor)),
		YMax:    charts.YMaxFor(filtered, m),
	}
	writePNG(w, func(buf *bytes.Buffer) error { return charts.RenderBar(buf, filtered, opts) })
}

func (s *Server) handleBoxChart(w http.ResponseWriter, r *http.Request) {
	m, err := ape.ParseMetric(chi.URLParam(r, "metric"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	t, ok := s.table(w)
	if !ok {
		return
	}
	filtered := parseFilter(t, r.URL.Query()).Apply(t)
	writePNG(w, func(buf *bytes.Buffer) error { return charts.RenderBox(buf, filtered, m) })
}

type recordsResponse struct {
	Filter  ape.Filter      `json:"filter"`
	Count   int             `json:"count"`
	Records []ape.Previewed `json:"records"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	f := parseFilter(t, r.URL.Query())
	records := ape.ResolvePreviews(ape.SortForDisplay(f.Apply(t)), s.cfg.PreviewsDirectory())
	writeJSON(w, http.StatusOK, recordsResponse{Filter: f, Count: len(records), Records: records})
}

type summaryResponse struct {
	Filter  ape.Filter       `json:"filter"`
	Summary []ape.SummaryRow `json:"summary"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	f := parseFilter(t, r.URL.Query())
	writeJSON(w, http.StatusOK, summaryResponse{Filter: f, Summary: ape.Summarize(f.Apply(t))})
}

// writePNG buffers the whole image before any byte is sent; a failed render
// answers 500.
func writePNG(w http.ResponseWriter, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logging.LogEvent("[SERVE] chart render failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
