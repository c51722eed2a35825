// cmd/cvdash/main.go
package main

import (
	"os"

	cmd "github.com/mitsiuTrimble/CV-dashboard/internal/cli"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
	closeLogging   = logging.Close
	exit           = os.Exit
)

// main starts the cvdash CLI by delegating to the cobra root command and
// exits with its status.
func main() {
	setVersionInfo(version, commit, date)
	code := executeCmd()
	_ = closeLogging()
	exit(code)
}
