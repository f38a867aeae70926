// Package logging provides the application logger. The TUI owns the
// terminal, so structured logs go to a file instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New opens a JSON logger appending to path. An empty path yields a
// logger that discards everything, which tests also use.
func New(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(slog.NewJSONHandler(f, nil)), f.Close, nil
}
