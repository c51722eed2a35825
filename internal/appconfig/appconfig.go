// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDataPath is the APE results file read by every view.
	DefaultDataPath = "ape_results.json"
	// DefaultPlotsDir holds the source PDF plots.
	DefaultPlotsDir = "plots"
	// DefaultPreviewsDir holds the PNG previews rendered from the plots.
	DefaultPreviewsDir = "plots_previews"
	// DefaultConvertDPI is the rasterization resolution of previews.
	DefaultConvertDPI = 150

	defaultHost            = "127.0.0.1"
	defaultPort            = 8501
	defaultPreviewPageSize = 12
	defaultPdftoppm        = "pdftoppm"
	defaultConvertTimeout  = 60 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	DataPath              string `json:"dataPath" mapstructure:"dataPath"`
	PlotsDir              string `json:"plotsDir" mapstructure:"plotsDir"`
	PreviewsDir           string `json:"previewsDir" mapstructure:"previewsDir"`
	Host                  string `json:"host" mapstructure:"host"`
	Port                  int    `json:"port" mapstructure:"port"`
	PreviewPageSize       int    `json:"previewPageSize" mapstructure:"previewPageSize"`
	ConvertDPI            int    `json:"convertDPI" mapstructure:"convertDPI"`
	PdftoppmPath          string `json:"pdftoppmPath,omitempty" mapstructure:"pdftoppmPath"`
	ConvertTimeoutSeconds int    `json:"convertTimeout,omitempty" mapstructure:"convertTimeout"`
	LogFile               string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug                 bool   `json:"debug" mapstructure:"debug"`
	JSONMode              bool   `json:"jsonMode" mapstructure:"jsonMode"`
	ConfigPath            string `json:"-" mapstructure:"-"`
}

// ResultsPath returns the APE results file path, falling back to the default.
func (c Config) ResultsPath() string {
	return orDefault(c.DataPath, DefaultDataPath)
}

// PlotsDirectory returns the directory of source PDF plots.
func (c Config) PlotsDirectory() string {
	return orDefault(c.PlotsDir, DefaultPlotsDir)
}

// PreviewsDirectory returns the directory of PNG previews.
func (c Config) PreviewsDirectory() string {
	return orDefault(c.PreviewsDir, DefaultPreviewsDir)
}

// ListenAddr returns host:port for the dashboard server.
func (c Config) ListenAddr() string {
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return net.JoinHostPort(orDefault(c.Host, defaultHost), strconv.Itoa(port))
}

// PageSize returns the number of previews per page.
func (c Config) PageSize() int {
	if c.PreviewPageSize <= 0 {
		return defaultPreviewPageSize
	}
	return c.PreviewPageSize
}

// DPI returns the rasterization resolution used by the converter.
func (c Config) DPI() int {
	if c.ConvertDPI <= 0 {
		return DefaultConvertDPI
	}
	return c.ConvertDPI
}

// PdftoppmBinary returns the rasterizer executable, resolved through PATH when not absolute.
func (c Config) PdftoppmBinary() string {
	return orDefault(c.PdftoppmPath, defaultPdftoppm)
}

// ConvertTimeout bounds the rasterization of a single PDF.
func (c Config) ConvertTimeout() time.Duration {
	if c.ConvertTimeoutSeconds <= 0 {
		return defaultConvertTimeout
	}
	return time.Duration(c.ConvertTimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	return orDefault(c.LogFile, "cvdash.log")
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// Load reads the application configuration from path. A missing file at the
// default path yields the defaults; a missing explicit path is an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// Validate checks values that have no usable default.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range (0..65535): %d", c.Port)
	}
	if c.ConvertDPI < 0 {
		return fmt.Errorf("convertDPI must not be negative: %d", c.ConvertDPI)
	}
	return nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
