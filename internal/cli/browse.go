// internal/cli/browse.go
package cvdash

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd implements 'browse', the interactive terminal browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the APE metrics in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		// The alternate screen owns stdout; log to the file only.
		f, err := tea.LogToFile(cfg.LogFilePath(), "browse")
		if err != nil {
			return err
		}
		defer f.Close()
		log.Printf("[BROWSE] %s", cfg.ResultsPath())
		return tui.Run(cfg, ape.Load)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
