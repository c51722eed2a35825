// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

// TestLoad covers a valid file, invalid JSON, out-of-range values and a
// nonexistent path.
func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `{
        "plotsDir": "out/plots",
        "port": 9000,
        "convertDPI": 200
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.PlotsDirectory() != "out/plots" {
		t.Fatalf("expected plots dir out/plots, got %q", cfg.PlotsDirectory())
	}
	if cfg.ListenAddr() != "127.0.0.1:9000" {
		t.Fatalf("expected listen addr 127.0.0.1:9000, got %q", cfg.ListenAddr())
	}
	if cfg.DPI() != 200 {
		t.Fatalf("expected DPI 200, got %d", cfg.DPI())
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}

	if _, err := Load(writeTempConfig(t, `{ "port": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	if _, err := Load(writeTempConfig(t, `{ "port": 70000 }`)); err == nil {
		t.Fatal("Load() with out-of-range port should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.ResultsPath() != "ape_results.json" {
		t.Fatalf("unexpected data path %q", cfg.ResultsPath())
	}
	if cfg.PlotsDirectory() != "plots" || cfg.PreviewsDirectory() != "plots_previews" {
		t.Fatalf("unexpected dirs %q %q", cfg.PlotsDirectory(), cfg.PreviewsDirectory())
	}
	if cfg.ListenAddr() != "127.0.0.1:8501" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr())
	}
	if cfg.PageSize() != 12 {
		t.Fatalf("unexpected page size %d", cfg.PageSize())
	}
	if cfg.DPI() != 150 {
		t.Fatalf("unexpected DPI %d", cfg.DPI())
	}
	if cfg.PdftoppmBinary() != "pdftoppm" {
		t.Fatalf("unexpected pdftoppm binary %q", cfg.PdftoppmBinary())
	}
	if cfg.ConvertTimeout() != 60*time.Second {
		t.Fatalf("unexpected convert timeout %v", cfg.ConvertTimeout())
	}
	if cfg.LogFilePath() != "cvdash.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFilePath())
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil)
	out := buf.String()
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected defaults notice, got: %s", out)
	}
	if !strings.Contains(out, "Data File:         ape_results.json") {
		t.Fatalf("expected data file line, got: %s", out)
	}

	buf.Reset()
	ShowConfig(&buf, "config/config.json", &Config{Port: 9100})
	if !strings.Contains(buf.String(), "Config file: config/config.json") {
		t.Fatalf("expected config file line, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "127.0.0.1:9100") {
		t.Fatalf("expected listen address, got: %s", buf.String())
	}
}
