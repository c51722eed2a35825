// Package logging routes the standard logger to stdout and an optional log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
)

// Init sends log output to stdout and, when logPath is set, to that file as
// well. Calling Init again closes the previous file.
func Init(logPath string, debugEnabled bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	debug = debugEnabled

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and points the logger back at stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	debug = false
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// DebugEnabled reports whether Debugf output is emitted.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// Debugf logs only when debug logging was enabled by Init.
func Debugf(format string, args ...any) {
	if !DebugEnabled() {
		return
	}
	LogEvent("[DEBUG] "+format, args...)
}

// LogRequest writes one access line for an HTTP request.
func LogRequest(method, path string, status int, elapsed time.Duration) {
	log.Println(buildRequestMessage(method, path, status, elapsed))
}

func buildRequestMessage(method, path string, status int, elapsed time.Duration) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = "UNKNOWN"
	}
	p := strings.TrimSpace(path)
	if p == "" {
		p = "/"
	}
	parts := []string{"[HTTP]", m, p}
	parts = append(parts, fmt.Sprintf("status=%d", status))
	parts = append(parts, fmt.Sprintf("elapsed_ms=%d", elapsed.Milliseconds()))
	return strings.Join(parts, " ")
}
