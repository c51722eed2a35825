// internal/convert/convert.go
// Package convert rasterizes the first page of each PDF plot into a PNG preview.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
)

var (
	// ErrNotPDF is returned for files that lack the PDF header.
	ErrNotPDF = errors.New("not a PDF file")
	// ErrEmptyExtraction is returned when the rasterizer produced no image.
	ErrEmptyExtraction = errors.New("no images extracted")
)

var (
	successfulResult = color.New(color.FgGreen).SprintFunc()
	failedResult     = color.New(color.FgRed).SprintFunc()
	warningResult    = color.New(color.FgYellow).SprintFunc()
)

var pdfMagic = []byte("%PDF-")

// Rasterizer renders the first page of a PDF into a PNG file at outPath.
type Rasterizer interface {
	RasterizeFirstPage(ctx context.Context, pdfPath, outPath string, dpi int) error
}

// Converter turns every PDF in SourceDir into DestDir/<name>.png.
type Converter struct {
	SourceDir  string
	DestDir    string
	DPI        int
	Rasterizer Rasterizer
	Out        io.Writer
}

// Failure records why one file could not be converted.
type Failure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

func (f Failure) Error() string { return fmt.Sprintf("%s: %v", f.Name, f.Err) }

// Report summarises a batch.
type Report struct {
	Converted []string  `json:"converted"`
	Failed    []Failure `json:"failed"`
}

// Run converts the batch. Per-file failures are reported and never stop the
// batch; only directory errors and cancellation end it early.
func (c *Converter) Run(ctx context.Context) (Report, error) {
	var report Report
	if c.Rasterizer == nil {
		return report, errors.New("no rasterizer configured")
	}
	out := c.Out
	if out == nil {
		out = io.Discard
	}

	if err := os.MkdirAll(c.DestDir, 0o755); err != nil {
		return report, fmt.Errorf("unable to create output directory %s: %w", c.DestDir, err)
	}
	names, err := listPDFs(c.SourceDir)
	if err != nil {
		return report, err
	}
	logging.LogEvent("[CONVERT] %d PDF file(s) in %s -> %s at %d DPI", len(names), c.SourceDir, c.DestDir, c.DPI)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outName := name + ape.PreviewSuffix
		err := c.convertOne(ctx, name, outName)
		switch {
		case err == nil:
			report.Converted = append(report.Converted, name)
			fmt.Fprintf(out, "%s %s -> %s\n", successfulResult("Converted:"), name, outName)
			logging.LogEvent("[CONVERT] converted %s -> %s", name, outName)
		case errors.Is(err, ErrEmptyExtraction):
			report.Failed = append(report.Failed, Failure{Name: name, Err: err})
			fmt.Fprintf(out, "%s %s\n", warningResult("No images extracted from"), name)
			logging.LogEvent("[CONVERT] no image extracted from %s", name)
		default:
			report.Failed = append(report.Failed, Failure{Name: name, Err: err})
			fmt.Fprintf(out, "%s %s: %v\n", failedResult("Failed to convert"), name, err)
			logging.LogEvent("[CONVERT] failed to convert %s: %v", name, err)
		}
	}
	return report, nil
}

func (c *Converter) convertOne(ctx context.Context, name, outName string) error {
	src := filepath.Join(c.SourceDir, name)
	dst := filepath.Join(c.DestDir, outName)

	if err := checkPDFHeader(src); err != nil {
		return err
	}
	if err := c.Rasterizer.RasterizeFirstPage(ctx, src, dst, c.DPI); err != nil {
		return err
	}
	info, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrEmptyExtraction
		}
		return err
	}
	if info.Size() == 0 {
		_ = os.Remove(dst)
		return ErrEmptyExtraction
	}
	return nil
}

// listPDFs returns the sorted names of regular *.pdf files in dir.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read source directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func checkPDFHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return ErrNotPDF
	}
	return nil
}
