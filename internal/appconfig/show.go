package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:         %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Data File:         %s\n", cfg.ResultsPath())
	fmt.Fprintf(out, "  Plots Dir:         %s\n", cfg.PlotsDirectory())
	fmt.Fprintf(out, "  Previews Dir:      %s\n", cfg.PreviewsDirectory())
	fmt.Fprintf(out, "  Listen Address:    %s\n", cfg.ListenAddr())
	fmt.Fprintf(out, "  Preview Page Size: %d\n", cfg.PageSize())
	fmt.Fprintf(out, "  Convert DPI:       %d\n", cfg.DPI())
	fmt.Fprintf(out, "  pdftoppm Binary:   %s\n", cfg.PdftoppmBinary())
	fmt.Fprintf(out, "  Convert Timeout:   %s\n", cfg.ConvertTimeout())
	fmt.Fprintf(out, "  Log File:          %s\n", cfg.LogFilePath())
}
