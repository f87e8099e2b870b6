// ABOUTME: Structured logger construction on top of charmbracelet/log
// ABOUTME: Applies configured level, format, and optional log file, then installs it as default
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/clientdesk/config"
)

// New builds a logger writing to w with the given level and format
// ("text", "json" or "logfmt").
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          config.AppName,
		Level:           lvl,
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
		opts.TimeFormat = time.RFC3339
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
		opts.TimeFormat = time.RFC3339
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return log.NewWithOptions(w, opts), nil
}

// Setup builds the process logger from cfg and installs it as the default.
// Interactive commands pass quiet so log lines never draw over the screen;
// they still reach the log file when one is configured. The returned close
// func releases the file.
func Setup(cfg *config.Config, stderr io.Writer, quiet bool) (*log.Logger, func() error, error) {
	closer := func() error { return nil }
	w := stderr
	if quiet {
		w = io.Discard
	}

	if path := cfg.LogFilePath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = f.Close
		if quiet {
			w = f
		} else {
			w = io.MultiWriter(stderr, f)
		}
	}

	logger, err := New(w, cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	log.SetDefault(logger)
	return logger, closer, nil
}
