package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRasterizer writes a tiny PNG unless the PDF's name says otherwise.
type fakeRasterizer struct {
	calls []string
	dpis  []int
}

func (f *fakeRasterizer) RasterizeFirstPage(_ context.Context, pdfPath, outPath string, dpi int) error {
	name := filepath.Base(pdfPath)
	f.calls = append(f.calls, name)
	f.dpis = append(f.dpis, dpi)
	switch {
	case strings.HasPrefix(name, "broken"):
		return errors.New("syntax error in PDF")
	case strings.HasPrefix(name, "blank"):
		return os.WriteFile(outPath, nil, 0o644)
	case strings.HasPrefix(name, "nothing"):
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

func writePDF(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.7\n%fake\n"), 0o644))
}

func TestConverterRunContinuesPastFailures(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "plots_previews")

	writePDF(t, src, "a.pdf")
	writePDF(t, src, "UPPER.PDF")
	writePDF(t, src, "broken.pdf")
	writePDF(t, src, "blank.pdf")
	writePDF(t, src, "nothing.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(src, "corrupt.pdf"), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("%PDF-"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(src, "dir.pdf"), 0o755))

	fake := &fakeRasterizer{}
	var out bytes.Buffer
	c := &Converter{SourceDir: src, DestDir: dst, DPI: 150, Rasterizer: fake, Out: &out}

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"UPPER.PDF", "a.pdf"}, report.Converted)
	require.Len(t, report.Failed, 4)

	failed := map[string]error{}
	for _, f := range report.Failed {
		failed[f.Name] = f.Err
	}
	assert.ErrorIs(t, failed["blank.pdf"], ErrEmptyExtraction)
	assert.ErrorIs(t, failed["nothing.pdf"], ErrEmptyExtraction)
	assert.ErrorIs(t, failed["corrupt.pdf"], ErrNotPDF)
	assert.EqualError(t, failed["broken.pdf"], "syntax error in PDF")

	// corrupt.pdf never reaches the rasterizer.
	assert.NotContains(t, fake.calls, "corrupt.pdf")
	for _, dpi := range fake.dpis {
		assert.Equal(t, 150, dpi)
	}

	assert.FileExists(t, filepath.Join(dst, "a.pdf.png"))
	assert.FileExists(t, filepath.Join(dst, "UPPER.PDF.png"))
	assert.NoFileExists(t, filepath.Join(dst, "blank.pdf.png"))
	assert.Contains(t, out.String(), "a.pdf -> a.pdf.png")
	assert.Contains(t, out.String(), "broken.pdf: syntax error in PDF")
	assert.Contains(t, out.String(), "blank.pdf")
}

func TestConverterRunIsIdempotent(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writePDF(t, src, "a.pdf")

	c := &Converter{SourceDir: src, DestDir: dst, DPI: 150, Rasterizer: &fakeRasterizer{}}
	first, err := c.Run(context.Background())
	require.NoError(t, err)
	second, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConverterRunMissingSource(t *testing.T) {
	c := &Converter{SourceDir: filepath.Join(t.TempDir(), "missing"), DestDir: t.TempDir(), DPI: 150, Rasterizer: &fakeRasterizer{}}
	_, err := c.Run(context.Background())
	require.Error(t, err)
}

func TestConverterRunCancelled(t *testing.T) {
	src := t.TempDir()
	writePDF(t, src, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Converter{SourceDir: src, DestDir: t.TempDir(), DPI: 150, Rasterizer: &fakeRasterizer{}}
	report, err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Converted)
}

func TestConverterRequiresRasterizer(t *testing.T) {
	_, err := (&Converter{SourceDir: t.TempDir(), DestDir: t.TempDir()}).Run(context.Background())
	require.Error(t, err)
}

func TestBuildArgs(t *testing.T) {
	args, err := buildArgs("plots/a.pdf", "plots_previews/a.pdf.png", 150)
	require.NoError(t, err)
	assert.Equal(t, []string{"-png", "-r", "150", "-f", "1", "-l", "1", "-singlefile", "plots/a.pdf", "plots_previews/a.pdf"}, args)

	_, err = buildArgs("a.pdf", "a.pdf.jpg", 150)
	assert.Error(t, err)
	_, err = buildArgs("a.pdf", "a.pdf.png", 0)
	assert.Error(t, err)
}

func TestPdftoppmMissingBinary(t *testing.T) {
	p := Pdftoppm{Binary: filepath.Join(t.TempDir(), "no-such-pdftoppm")}
	err := p.RasterizeFirstPage(context.Background(), "a.pdf", filepath.Join(t.TempDir(), "a.pdf.png"), 150)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with code 127")
}
