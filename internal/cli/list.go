// internal/cli/list.go
package cvdash

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
}

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

// facetsCmd implements 'list facets', which prints the algorithms, jobsites
// and subtags found in the results file.
var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the algorithms, jobsites and subtags in the results file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListFacets(cmd.OutOrStdout(), getConfig())
	},
}

var facetLabel = color.New(color.FgCyan, color.Bold).SprintFunc()

type facetsDocument struct {
	Records    int              `json:"records"`
	Extraction ape.ExtractStats `json:"extraction"`
	Algorithms []string         `json:"algorithms"`
	Jobsites   []string         `json:"jobsites"`
	Subtags    []string         `json:"subtags"`
}

func runListFacets(out io.Writer, cfg *appconfig.Config) error {
	t, stats, err := ape.LoadWithStats(cfg.ResultsPath())
	if err != nil {
		return err
	}
	doc := facetsDocument{
		Records:    len(t),
		Extraction: stats,
		Algorithms: t.Algorithms(),
		Jobsites:   t.Tags(),
		Subtags:    t.Subtags(),
	}
	if cfg.JSONMode {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Fprintf(out, "%s %d kept of %d entries (ground truth %d, short path %d, malformed %d)\n",
		facetLabel("Records:"), stats.Kept, stats.Total(), stats.GroundTruth, stats.ShortPath, stats.Malformed)
	fmt.Fprintf(out, "%s %s\n", facetLabel("Algorithms:"), strings.Join(doc.Algorithms, ", "))
	fmt.Fprintf(out, "%s %s\n", facetLabel("Jobsites:"), strings.Join(doc.Jobsites, ", "))
	fmt.Fprintf(out, "%s %s\n", facetLabel("Subtags:"), strings.Join(doc.Subtags, ", "))
	return nil
}

// runListCommands prints the command tree in a two-column layout.
func runListCommands(out io.Writer, rootCmd *cobra.Command) {
	commandData := collectCommandData(rootCmd, "", "")

	maxPathLength := 0
	for _, data := range commandData {
		if len(data.path) > maxPathLength {
			maxPathLength = len(data.path)
		}
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, data := range commandData {
		if strings.Contains(data.path, "completion") || strings.Contains(data.path, "help") {
			continue
		}
		fmt.Fprintf(out, "  %s%s%s\n", data.path, strings.Repeat(" ", maxPathLength-len(data.path)+2), data.description)
	}
}

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	path        string
	description string
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, subCmd := range cmd.Commands() {
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}
	return allData
}

func init() {
	listCmd.AddCommand(commandsCmd)
	listCmd.AddCommand(facetsCmd)
	rootCmd.AddCommand(listCmd)
}
