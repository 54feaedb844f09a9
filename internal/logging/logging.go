// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/config"
)

// Setup installs the global logger described by cfg, writing to w unless
// cfg.File is set. The returned closer releases the log file, if any.
func Setup(cfg config.LoggingConfig, w io.Writer) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		return nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		path, err := config.ExpandPath(cfg.File)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: cfg.File != ""}
	default:
		closer.Close()
		return nil, fmt.Errorf("invalid log format %q (use console or json)", cfg.Format)
	}

	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
