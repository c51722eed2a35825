// internal/cli/serve.go
package cvdash

import (
	"os/signal"
	"syscall"

	"github.com/mitsiuTrimble/CV-dashboard/internal/web"
	"github.com/spf13/cobra"
)

// serveCmd implements 'serve', which runs the web dashboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the APE metrics dashboard over HTTP",
	Long: `Serve the interactive dashboard: filters, the mean RMSE ranking, per-subtag
charts, the highlighted metrics table, plot previews and the CSV and ZIP downloads.
The results file is re-read on every request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return web.New(*getConfig()).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "listen port (default 8501)")
	serveCmd.Flags().Int("pageSize", 0, "previews per page (default 12)")
	bindFlag(serveCmd, "host", "host")
	bindFlag(serveCmd, "port", "port")
	bindFlag(serveCmd, "previewPageSize", "pageSize")
	rootCmd.AddCommand(serveCmd)
}
