// Package logging builds the zerolog loggers used by the dashboard and the
// fixture backend.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a logger with the given configuration. Unknown levels fall
// back to info; output defaults to stdout.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// OpenFile opens path for appending, creating its directory. The TUI owns
// the terminal, so the dashboard logs here instead of stdout.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// HTTPRequest logs one outbound or inbound request. Status 0 means the
// request never got a response.
func HTTPRequest(l zerolog.Logger, requestID, method, path string, status int, d time.Duration, err error) {
	event := l.Info()
	if err != nil || status >= 400 || status == 0 {
		event = l.Error()
	}
	event.
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status_code", status).
		Dur("duration_ms", d).
		Err(err).
		Msg("HTTP request")
}
