// internal/cli/commands_test.go
package cvdash

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

const resultsJSON = `[
  {"algorithm":"ORB","algorithm_relative_folder":"NWC/mp4_low/run","folder":"vid1","plot_path":"plots/orb_vid1.pdf","rmse":1.0},
  {"algorithm":"ORB","algorithm_relative_folder":"NWC/mp4_high/run","folder":"vid2","plot_path":"plots/orb_vid2.pdf","rmse":3.0},
  {"algorithm":"VINS","algorithm_relative_folder":"SEA/mp4_low/run","folder":"harbor","plot_path":"plots/vins_harbor.pdf","rmse":0.5},
  {"algorithm":"SEA_groundTruth","algorithm_relative_folder":"SEA/mp4_low","folder":"harbor"},
  {"algorithm":"DSO","algorithm_relative_folder":"flat","folder":"vid9"}
]`

func writeResults(t *testing.T) *appconfig.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ape_results.json")
	require.NoError(t, os.WriteFile(path, []byte(resultsJSON), 0o644))
	return &appconfig.Config{
		DataPath:    path,
		PlotsDir:    filepath.Join(dir, "plots"),
		PreviewsDir: filepath.Join(dir, "plots_previews"),
	}
}

func TestRunSummaryTable(t *testing.T) {
	cfg := writeResults(t)
	var out bytes.Buffer
	require.NoError(t, runSummary(&out, cfg, summaryOptions{}, ape.Load))

	text := out.String()
	assert.Contains(t, text, "Mean RMSE")
	assert.Less(t, strings.Index(text, "VINS"), strings.Index(text, "ORB"))
	assert.NotContains(t, text, "groundTruth")
}

func TestRunSummaryJSON(t *testing.T) {
	cfg := writeResults(t)
	cfg.JSONMode = true
	var out bytes.Buffer
	opts := summaryOptions{filterOptions: filterOptions{algorithm: "ORB"}, records: true}
	require.NoError(t, runSummary(&out, cfg, opts, ape.Load))

	var doc summaryDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Summary, 1)
	assert.Equal(t, "ORB", doc.Summary[0].Algorithm)
	assert.InDelta(t, 2.0, *doc.Summary[0].MeanRMSE, 1e-9)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "mp4_low", doc.Records[0].Subtag)
}

func TestRunSummaryYAML(t *testing.T) {
	cfg := writeResults(t)
	var out bytes.Buffer
	opts := summaryOptions{filterOptions: filterOptions{tags: []string{"SEA"}}, yaml: true}
	require.NoError(t, runSummary(&out, cfg, opts, ape.Load))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	summary, ok := doc["summary"].([]any)
	require.True(t, ok)
	require.Len(t, summary, 1)
	assert.Equal(t, "VINS", summary[0].(map[string]any)["algorithm"])
}

func TestRunSummaryEmptyAndErrors(t *testing.T) {
	cfg := writeResults(t)
	var out bytes.Buffer
	opts := summaryOptions{filterOptions: filterOptions{search: "nothing-matches"}}
	require.NoError(t, runSummary(&out, cfg, opts, ape.Load))
	assert.Contains(t, out.String(), "No records match")

	failing := func(string) (ape.Table, error) { return nil, errors.New("unable to read data file") }
	assert.Error(t, runSummary(&out, cfg, summaryOptions{}, failing))
}

func TestRunExportCSV(t *testing.T) {
	cfg := writeResults(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	var out bytes.Buffer
	opts := exportCSVOptions{filterOptions: filterOptions{subtags: []string{"mp4_low"}}, output: target}
	require.NoError(t, runExportCSV(&out, cfg, opts, ape.Load))
	assert.Contains(t, out.String(), "Wrote 2 records")

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ape.CSVHeader, rows[0])
	assert.Equal(t, "ORB", rows[1][0])
	assert.Equal(t, "VINS", rows[2][0])
}

func TestRunExportCSVStdout(t *testing.T) {
	cfg := writeResults(t)
	var out bytes.Buffer
	require.NoError(t, runExportCSV(&out, cfg, exportCSVOptions{output: "-"}, ape.Load))
	assert.True(t, strings.HasPrefix(out.String(), "Algorithm,Tag,Subtag,Video,RMSE"))
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
}

func TestRunListFacets(t *testing.T) {
	cfg := writeResults(t)
	var out bytes.Buffer
	require.NoError(t, runListFacets(&out, cfg))
	text := out.String()
	assert.Contains(t, text, "3 kept of 5 entries (ground truth 1, short path 1, malformed 0)")
	assert.Contains(t, text, "ORB, VINS")
	assert.Contains(t, text, "mp4_low, mp4_high")

	cfg.JSONMode = true
	out.Reset()
	require.NoError(t, runListFacets(&out, cfg))
	var doc facetsDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 3, doc.Records)
	assert.Equal(t, []string{"NWC", "SEA"}, doc.Jobsites)
}

type stubRasterizer struct{}

func (stubRasterizer) RasterizeFirstPage(_ context.Context, _, outPath string, _ int) error {
	return os.WriteFile(outPath, []byte("png"), 0o644)
}

func TestRunConvert(t *testing.T) {
	cfg := writeResults(t)
	require.NoError(t, os.MkdirAll(cfg.PlotsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PlotsDir, "orb_vid1.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PlotsDir, "bad.pdf"), []byte("nope"), 0o644))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runConvert(cmd, cfg, stubRasterizer{}))
	assert.Contains(t, out.String(), "orb_vid1.pdf -> orb_vid1.pdf.png")
	assert.Contains(t, out.String(), "1 converted, 1 failed")
	assert.FileExists(t, filepath.Join(cfg.PreviewsDir, "orb_vid1.pdf.png"))

	cfg.JSONMode = true
	out.Reset()
	require.NoError(t, runConvert(cmd, cfg, stubRasterizer{}))
	var doc struct {
		Converted []string `json:"converted"`
		Failed    []struct {
			Name  string `json:"name"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, []string{"orb_vid1.pdf"}, doc.Converted)
	require.Len(t, doc.Failed, 1)
	assert.Equal(t, "bad.pdf", doc.Failed[0].Name)
	assert.Contains(t, doc.Failed[0].Error, "not a PDF")
}

func TestRunListCommands(t *testing.T) {
	var out bytes.Buffer
	runListCommands(&out, rootCmd)
	text := out.String()
	for _, name := range []string{"serve", "convert", "summary", "browse", "export csv", "show config", "list facets"} {
		assert.Contains(t, text, name)
	}
	assert.NotContains(t, text, "completion")
}
