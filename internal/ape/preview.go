package ape

import (
	"os"
	"path/filepath"
)

// PreviewSuffix is appended to a plot file's basename to name its preview image.
const PreviewSuffix = ".png"

// Previewed pairs a record with the path of its preview image. Preview is empty
// when no preview exists.
type Previewed struct {
	Record
	Preview string `json:"preview"`
}

// PreviewPath is where the preview for plotFile is expected inside dir.
func PreviewPath(dir, plotFile string) string {
	return filepath.Join(dir, plotFile+PreviewSuffix)
}

// ResolvePreview returns the preview path for plotFile if a regular file exists
// there, and "" otherwise.
func ResolvePreview(dir, plotFile string) string {
	if plotFile == "" {
		return ""
	}
	p := PreviewPath(dir, plotFile)
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return p
}

// ResolvePreviews attaches preview paths to every record of t.
func ResolvePreviews(t Table, dir string) []Previewed {
	out := make([]Previewed, 0, len(t))
	for _, r := range t {
		out = append(out, Previewed{Record: r, Preview: ResolvePreview(dir, r.PlotFile)})
	}
	return out
}
