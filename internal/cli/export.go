// internal/cli/export.go
package cvdash

import (
	"fmt"
	"io"
	"os"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/spf13/cobra"
)

// exportCmd represents the 'export' command group.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Group commands for exporting filtered data",
}

type exportCSVOptions struct {
	filterOptions
	output string
}

var exportCSVOpts exportCSVOptions

// exportCSVCmd implements 'export csv', which writes the filtered records in
// the same CSV layout as the dashboard download.
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the filtered records as CSV",
	Long:  `Write the filtered records as CSV to --output (default ` + ape.CSVFileName + `), or to stdout with --output -.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportCSV(cmd.OutOrStdout(), getConfig(), exportCSVOpts, ape.Load)
	},
}

func runExportCSV(stdout io.Writer, cfg *appconfig.Config, opts exportCSVOptions, load func(string) (ape.Table, error)) error {
	t, err := load(cfg.ResultsPath())
	if err != nil {
		return err
	}
	filtered := ape.SortForDisplay(opts.filter(t).Apply(t))

	if opts.output == "-" {
		return ape.WriteCSV(stdout, filtered)
	}

	path := opts.output
	if path == "" {
		path = ape.CSVFileName
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := ape.WriteCSV(f, filtered); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d records to %s\n", len(filtered), path)
	return nil
}

func init() {
	addFilterFlags(exportCSVCmd, &exportCSVOpts.filterOptions)
	exportCSVCmd.Flags().StringVarP(&exportCSVOpts.output, "output", "o", "", "output file, or - for stdout")
	exportCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(exportCmd)
}
