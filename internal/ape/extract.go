// internal/ape/extract.go
package ape

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema only requires the results file to be an array. Individual
// entries are checked separately so one bad entry never rejects the file.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array"
}`

const entrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "algorithm":                 {"type": ["string", "null"]},
    "algorithm_relative_folder": {"type": ["string", "null"]},
    "folder":                    {"type": ["string", "null"]},
    "plot_path":                 {"type": ["string", "null"]},
    "rmse":   {"type": ["number", "null"]},
    "mean":   {"type": ["number", "null"]},
    "median": {"type": ["number", "null"]},
    "std":    {"type": ["number", "null"]},
    "min":    {"type": ["number", "null"]},
    "max":    {"type": ["number", "null"]}
  }
}`

var (
	documentValidator = mustSchema(documentSchema)
	entryValidator    = mustSchema(entrySchema)
)

// mustSchema compiles a built-in schema; a failure is a programming error.
func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// entry mirrors one element of the results file.
type entry struct {
	Algorithm               string   `json:"algorithm"`
	AlgorithmRelativeFolder string   `json:"algorithm_relative_folder"`
	Folder                  string   `json:"folder"`
	PlotPath                string   `json:"plot_path"`
	RMSE                    *float64 `json:"rmse"`
	Mean                    *float64 `json:"mean"`
	Median                  *float64 `json:"median"`
	Std                     *float64 `json:"std"`
	Min                     *float64 `json:"min"`
	Max                     *float64 `json:"max"`
}

// ExtractStats counts what happened to each entry during extraction.
type ExtractStats struct {
	Kept        int `json:"kept"`
	GroundTruth int `json:"groundTruth"`
	ShortPath   int `json:"shortPath"`
	Malformed   int `json:"malformed"`
}

// Total is the number of entries seen.
func (s ExtractStats) Total() int {
	return s.Kept + s.GroundTruth + s.ShortPath + s.Malformed
}

// Load reads the results file at path and extracts its records. Only file-level
// problems are returned as errors; malformed entries are dropped.
func Load(path string) (Table, error) {
	table, _, err := LoadWithStats(path)
	return table, err
}

// LoadWithStats is Load that also reports how many entries were skipped and why.
func LoadWithStats(path string) (Table, ExtractStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ExtractStats{}, fmt.Errorf("unable to read data file %s: %w", path, err)
	}
	table, stats, err := Parse(data)
	if err != nil {
		return nil, ExtractStats{}, fmt.Errorf("unable to parse data file %s: %w", path, err)
	}
	logging.Debugf("[LOAD] %s: %d entries, kept=%d groundTruth=%d shortPath=%d malformed=%d",
		path, stats.Total(), stats.Kept, stats.GroundTruth, stats.ShortPath, stats.Malformed)
	return table, stats, nil
}

// Parse validates raw as a JSON array and extracts its records.
func Parse(raw []byte) (Table, ExtractStats, error) {
	result, err := documentValidator.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, ExtractStats{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, ExtractStats{}, fmt.Errorf("results document failed validation: %s", joinErrors(result.Errors()))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ExtractStats{}, fmt.Errorf("invalid JSON: %w", err)
	}
	table, stats := Extract(entries)
	return table, stats, nil
}

// Extract converts raw entries into records. Ground truth entries, entries whose
// relative folder has fewer than two segments and malformed entries are skipped.
func Extract(entries []json.RawMessage) (Table, ExtractStats) {
	var stats ExtractStats
	table := make(Table, 0, len(entries))
	for i, raw := range entries {
		e, ok := decodeEntry(raw)
		if !ok {
			logging.Debugf("[LOAD] entry %d malformed, skipped", i)
			stats.Malformed++
			continue
		}
		if strings.Contains(e.Algorithm, GroundTruthMarker) {
			stats.GroundTruth++
			continue
		}
		parts := strings.Split(e.AlgorithmRelativeFolder, "/")
		if len(parts) < 2 {
			stats.ShortPath++
			continue
		}
		table = append(table, Record{
			Algorithm: e.Algorithm,
			Tag:       parts[0],
			Subtag:    parts[1],
			Video:     e.Folder,
			RMSE:      e.RMSE,
			Mean:      e.Mean,
			Median:    e.Median,
			Std:       e.Std,
			Min:       e.Min,
			Max:       e.Max,
			PlotFile:  baseName(e.PlotPath),
		})
		stats.Kept++
	}
	return table, stats
}

func decodeEntry(raw json.RawMessage) (entry, bool) {
	result, err := entryValidator.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil || !result.Valid() {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}
	return e, true
}

// baseName keeps everything after the last slash, so "plots/" yields "".
func baseName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func joinErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, desc := range errs {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, ", ")
}
