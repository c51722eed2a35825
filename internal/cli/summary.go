// internal/cli/summary.go
package cvdash

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/mitsiuTrimble/CV-dashboard/internal/tui"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

type filterOptions struct {
	algorithm string
	tags      []string
	subtags   []string
	search    string
}

type summaryOptions struct {
	filterOptions
	yaml    bool
	records bool
}

var summaryOpts summaryOptions

// summaryCmd implements 'summary', which prints the mean RMSE ranking of the
// filtered records.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the mean RMSE ranking per algorithm",
	Long: `Print the algorithms ranked by mean RMSE over the filtered records, as a
styled table, as JSON (--jsonMode) or as YAML (--yaml).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.OutOrStdout(), getConfig(), summaryOpts, ape.Load)
	},
}

// summaryDocument is the machine-readable form of the summary.
type summaryDocument struct {
	Filter  ape.Filter       `json:"filter" yaml:"filter"`
	Summary []ape.SummaryRow `json:"summary" yaml:"summary"`
	Records ape.Table        `json:"records,omitempty" yaml:"records,omitempty"`
}

func runSummary(out io.Writer, cfg *appconfig.Config, opts summaryOptions, load func(string) (ape.Table, error)) error {
	t, err := load(cfg.ResultsPath())
	if err != nil {
		return err
	}
	f := opts.filterOptions.filter(t)
	filtered := ape.SortForDisplay(f.Apply(t))

	doc := summaryDocument{Filter: f, Summary: ape.Summarize(filtered)}
	if opts.records {
		doc.Records = filtered
	}

	switch {
	case cfg.JSONMode:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case opts.yaml:
		return writeYAML(out, doc)
	}

	if len(filtered) == 0 {
		fmt.Fprintln(out, "No records match the current filters.")
		return nil
	}
	fmt.Fprintln(out, tui.RenderSummary(doc.Summary))
	if opts.records {
		fmt.Fprintln(out, tui.RenderRecords(filtered))
	}
	return nil
}

// writeYAML encodes v with the same field names as the JSON output.
func writeYAML(out io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// filter builds the record filter; unset multi-selects mean every value.
func (o filterOptions) filter(t ape.Table) ape.Filter {
	f := ape.DefaultFilter(t)
	if o.algorithm != "" {
		f.Algorithm = o.algorithm
	}
	if len(o.tags) > 0 {
		f.Tags = o.tags
	}
	if len(o.subtags) > 0 {
		f.Subtags = o.subtags
	}
	f.Search = o.search
	return f
}

func addFilterFlags(cmd *cobra.Command, o *filterOptions) {
	cmd.Flags().StringVar(&o.algorithm, "algorithm", "", "algorithm to keep (default: all algorithms)")
	cmd.Flags().StringSliceVar(&o.tags, "tag", nil, "jobsite tag to keep; repeatable (default: all)")
	cmd.Flags().StringSliceVar(&o.subtags, "subtag", nil, "subtag to keep; repeatable (default: all)")
	cmd.Flags().StringVar(&o.search, "search", "", "case-insensitive video substring")
}

func init() {
	addFilterFlags(summaryCmd, &summaryOpts.filterOptions)
	summaryCmd.Flags().BoolVar(&summaryOpts.yaml, "yaml", false, "print YAML instead of a table")
	summaryCmd.Flags().BoolVar(&summaryOpts.records, "records", false, "also print the filtered records")
	rootCmd.AddCommand(summaryCmd)
}
