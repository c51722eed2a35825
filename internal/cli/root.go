// internal/cli/root.go
package cvdash

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:           "cvdash",
	Short:         "cvdash: APE metrics dashboard and PDF plot preview converter",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Read the config file, if any, into viper.
		fileCfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}
		if fileCfg.ConfigPath != "" {
			viper.SetConfigFile(fileCfg.ConfigPath)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}

		// 2) If the user did not set a flag, copy the config value into the
		//    flag so pflags and viper agree on the final value.
		for _, name := range []string{"debug", "jsonMode"} {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}

		// 3) Materialize flags > config > defaults into currentConfig.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfg.ConfigPath = fileCfg.ConfigPath
		currentConfig = &cfg

		return logging.Init(cfg.LogFilePath(), cfg.Debug)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// SetVersionInfo records build metadata shown by --version.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "enable JSON output mode")
	rootCmd.PersistentFlags().String("logFile", "", "log file path (default cvdash.log)")
	rootCmd.PersistentFlags().String("data", "", "APE results JSON file (default "+appconfig.DefaultDataPath+")")
	rootCmd.PersistentFlags().String("plots", "", "directory of PDF plots (default "+appconfig.DefaultPlotsDir+")")
	rootCmd.PersistentFlags().String("previews", "", "directory of PNG previews (default "+appconfig.DefaultPreviewsDir+")")

	// Bind flags to Viper keys (flags override config)
	bindFlag(rootCmd, "debug", "debug")
	bindFlag(rootCmd, "jsonMode", "jsonMode")
	bindFlag(rootCmd, "logFile", "logFile")
	bindFlag(rootCmd, "dataPath", "data")
	bindFlag(rootCmd, "plotsDir", "plots")
	bindFlag(rootCmd, "previewsDir", "previews")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		fmt.Fprintf(os.Stderr, "bind flag %s: %v\n", flag, err)
	}
}

// getConfig returns the loaded application configuration.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}
