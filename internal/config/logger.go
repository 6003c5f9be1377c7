package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/AndreyAkinshin/typedcli/internal/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenLogger builds the diagnostic logger described by the log section.
// Without a file the logger discards everything. The caller closes the
// returned io.Closer when the application exits.
func (c *Config) OpenLogger() (*slog.Logger, io.Closer, error) {
	if c.Log.File == "" {
		return log.Discard(), nopCloser{}, nil
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(c.Log.Level, c.Log.Format, f), f, nil
}
