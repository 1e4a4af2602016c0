// Package logging writes portal's structured log to a file. Stdout and
// stderr belong to the terminal UI, so nothing may log there while the
// program runs.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Init opens a dated log file under dir and returns a logger writing to
// it, plus a close function for shutdown.
func Init(dir, level string) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	name := fmt.Sprintf("portal-%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           parseLevel(level),
	})
	return logger, file.Close, nil
}

// Discard returns a logger that drops everything. Used in tests and as a
// fallback when the log file cannot be opened.
func Discard() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel + 1)
	return logger
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
