package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/config"
	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/logging"
	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/storage"
	"github.com/runnerr0/timemap/internal/viewer"
)

// sessionEnv is everything a command needs to move the control: the
// resolved config, the loaded records and a session drawing into layers.
type sessionEnv struct {
	cfg     *config.Config
	data    dataset.Dataset
	layers  *render.Layers
	session *viewer.Session

	closers []io.Closer
}

// Close releases the log file and the database handle, if any.
func (e *sessionEnv) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newSessionEnv builds a session over already-loaded records (for testing
// and for openSession).
func newSessionEnv(cfg *config.Config, data dataset.Dataset) (*sessionEnv, error) {
	opts, err := viewer.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	layers := render.NewLayers()
	session, err := viewer.New(data, layers, opts)
	if err != nil {
		return nil, err
	}
	return &sessionEnv{cfg: cfg, data: data, layers: layers, session: session}, nil
}

// openSession resolves config and logging from the global flags, loads
// both record kinds and builds the session.
func openSession(globals *GlobalFlags) (*sessionEnv, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	logCloser, err := setupLogging(cfg, globals)
	if err != nil {
		return nil, err
	}

	src, srcCloser, err := openSource(cfg)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	data := dataset.LoadAll(context.Background(), src)

	env, err := newSessionEnv(cfg, data)
	if err != nil {
		if srcCloser != nil {
			srcCloser.Close()
		}
		logCloser.Close()
		return nil, err
	}
	env.closers = append(env.closers, logCloser)
	if srcCloser != nil {
		env.closers = append(env.closers, srcCloser)
	}
	return env, nil
}

// loadConfig reads the config named by --config, or the default config
// (created on first use), then applies the data and mode overrides.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals.Config != "" {
		path, perr := config.ExpandPath(globals.Config)
		if perr != nil {
			return nil, perr
		}
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.LoadOrCreate()
		if err != nil {
			// Unreadable default config: fall back to built-in defaults.
			cfg = config.DefaultConfig()
		}
	}

	if globals.Events != "" {
		cfg.Data.Events = globals.Events
	}
	if globals.Routes != "" {
		cfg.Data.Routes = globals.Routes
	}
	if globals.Mode != "" {
		cfg.Timeline.Mode = globals.Mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs the global logger on stderr. --verbose forces
// debug level over any other setting.
func setupLogging(cfg *config.Config, globals *GlobalFlags) (io.Closer, error) {
	lc := cfg.Logging
	if globals.logLevel != "" {
		lc.Level = globals.logLevel
	}
	if globals.Verbose {
		lc.Level = "debug"
	}
	return logging.Setup(lc, os.Stderr)
}

// openSource picks the SQL source when a driver is configured and the
// JSON documents otherwise. The closer is nil for JSON sources and for a
// database that could not be opened.
func openSource(cfg *config.Config) (dataset.Source, io.Closer, error) {
	if driver := strings.ToLower(cfg.Data.SQL.Driver); driver != "" {
		dsn := cfg.Data.SQL.DSN
		if driver == storage.DriverSQLite {
			expanded, err := config.ExpandPath(dsn)
			if err != nil {
				return nil, nil, err
			}
			dsn = expanded
		}
		src, err := storage.Open(driver, dsn)
		if err != nil {
			// The map still comes up; LoadAll counts and logs both kinds.
			log.Warn().Err(err).Str("driver", driver).Msg("sql source unavailable")
			return dataset.UnavailableSource{Location: driver, Err: err}, nil, nil
		}
		log.Debug().Str("driver", driver).Msg("using sql source")
		return src, src, nil
	}

	events, err := config.ExpandPath(cfg.Data.Events)
	if err != nil {
		return nil, nil, err
	}
	routes, err := config.ExpandPath(cfg.Data.Routes)
	if err != nil {
		return nil, nil, err
	}
	timeout := time.Duration(cfg.Data.TimeoutSeconds) * time.Second
	return dataset.NewJSONSource(events, routes, timeout), nil, nil
}

// printJSON writes v to stdout, indented.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatNumber formats an int with comma separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var result strings.Builder
	if neg {
		result.WriteString("-")
	}
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// plural returns "1 event" or "3 events".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return formatNumber(n) + " " + noun + "s"
}
