// internal/cli/convert.go
package cvdash

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/mitsiuTrimble/CV-dashboard/internal/convert"
	"github.com/spf13/cobra"
)

// convertCmd implements 'convert', which renders a PNG preview of the first
// page of every PDF plot.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Render PNG previews of the PDF plots",
	Long: `Rasterize the first page of every PDF in the plots directory into
<previews>/<name>.pdf.png using poppler's pdftoppm. Files that fail are reported
and skipped; existing previews are overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, getConfig(), convert.Pdftoppm{
			Binary:  getConfig().PdftoppmBinary(),
			Timeout: getConfig().ConvertTimeout(),
		})
	},
}

func runConvert(cmd *cobra.Command, cfg *appconfig.Config, rasterizer convert.Rasterizer) error {
	out := cmd.OutOrStdout()
	progress := out
	if cfg.JSONMode {
		progress = io.Discard
	}

	c := &convert.Converter{
		SourceDir:  cfg.PlotsDirectory(),
		DestDir:    cfg.PreviewsDirectory(),
		DPI:        cfg.DPI(),
		Rasterizer: rasterizer,
		Out:        progress,
	}
	report, err := c.Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.JSONMode {
		return writeConvertJSON(out, report)
	}
	fmt.Fprintf(out, "\n%d converted, %d failed\n", len(report.Converted), len(report.Failed))
	return nil
}

type convertFailureJSON struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func writeConvertJSON(out io.Writer, report convert.Report) error {
	failed := make([]convertFailureJSON, 0, len(report.Failed))
	for _, f := range report.Failed {
		failed = append(failed, convertFailureJSON{Name: f.Name, Error: f.Err.Error()})
	}
	converted := report.Converted
	if converted == nil {
		converted = []string{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Converted []string             `json:"converted"`
		Failed    []convertFailureJSON `json:"failed"`
	}{converted, failed})
}

func init() {
	convertCmd.Flags().Int("dpi", 0, "rasterization resolution (default 150)")
	convertCmd.Flags().String("pdftoppm", "", "pdftoppm executable (default: pdftoppm on PATH)")
	convertCmd.Flags().Int("timeout", 0, "per-file timeout in seconds (default 60)")
	bindFlag(convertCmd, "convertDPI", "dpi")
	bindFlag(convertCmd, "pdftoppmPath", "pdftoppm")
	bindFlag(convertCmd, "convertTimeout", "timeout")
	rootCmd.AddCommand(convertCmd)
}
