package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timemap/internal/metrics"
)

func nan() float64 { return math.NaN() }

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})

	assert.Contains(t, output, "timemap 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "timemap 1.2.3", strings.TrimSpace(output))
}

func TestAllSubcommandsExist(t *testing.T) {
	parser, _, _ := buildParser("test")
	for _, name := range []string{"domain", "show", "replay", "popup", "classify", "serve"} {
		assert.NotNil(t, parser.Find(name), "subcommand %s should be registered", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"purge"})
	assert.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	captureOutput(t, func() {
		err := RunWithArgs("test", []string{"--help"})
		assert.NoError(t, err)
	})
}

func TestGlobalFlags(t *testing.T) {
	parser, globals, _ := buildParser("test")
	parser.SubcommandsOptional = true

	_, err := parser.ParseArgs([]string{
		"--json", "--verbose", "--config", "/tmp/x.yaml",
		"--events", "e.json", "--routes", "https://example.com/r.json", "--mode", "discrete",
	})
	require.NoError(t, err)

	assert.True(t, globals.JSON)
	assert.True(t, globals.Verbose)
	assert.Equal(t, "/tmp/x.yaml", globals.Config)
	assert.Equal(t, "e.json", globals.Events)
	assert.Equal(t, "https://example.com/r.json", globals.Routes)
	assert.Equal(t, "discrete", globals.Mode)
}

func TestPopupFlagsDefaults(t *testing.T) {
	parser, _, cmds := buildParser("test")
	// Defaults are applied while parsing; the missing --index then fails Execute.
	_, err := parser.ParseArgs([]string{"popup"})
	require.Error(t, err)

	assert.Equal(t, "event", cmds.Popup.Kind)
	assert.Equal(t, -1, cmds.Popup.Index)
}

func TestPopupRequiresIndex(t *testing.T) {
	err := RunWithArgs("test", []string{"popup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--index is required")
}

func TestPopupRejectsUnknownKind(t *testing.T) {
	err := RunWithArgs("test", []string{"popup", "--kind", "river", "--index", "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--kind must be event or route")
}

func TestShowRejectsInvalidAt(t *testing.T) {
	err := RunWithArgs("test", []string{"show", "--at", "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --at value")
}

func TestServeFlags(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{"serve", "--host", "0.0.0.0", "--port", "9000", "--log-level", "warn", "--config", "/nonexistent/config.yaml"})
	// The missing config fails Execute, after the flags were parsed.
	require.Error(t, err)

	assert.Equal(t, "0.0.0.0", cmds.Serve.Host)
	assert.Equal(t, 9000, cmds.Serve.Port)
	assert.Equal(t, "warn", cmds.Serve.LogLevel)
}

func TestEndToEnd_DomainFromConfigFile(t *testing.T) {
	events := writeFile(t, "events.json", `[
		{"time": 1000, "lat": 10, "lon": 10, "title": "A", "type": "human migration"},
		{"time": "n/a", "lat": 0, "lon": 0, "title": "B"}
	]`)
	cfgPath := writeFile(t, "config.yaml", "timeline:\n  mode: discrete\nlogging:\n  level: error\n")

	output := captureOutput(t, func() {
		err := RunWithArgs("test", []string{"--config", cfgPath, "--events", events, "--json", "domain"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, `"mode": "discrete"`)
	assert.Contains(t, output, `"times": [`)
	assert.Contains(t, output, `"untimed_events": 1`)
}

func TestEndToEnd_ShowFromConfigFile(t *testing.T) {
	events := writeFile(t, "events.json", `[{"time": 1000, "lat": 10, "lon": 10, "title": "A", "type": "human migration"}]`)
	cfgPath := writeFile(t, "config.yaml", "timeline:\n  mode: discrete\nlogging:\n  level: error\n")

	output := captureOutput(t, func() {
		err := RunWithArgs("test", []string{"--config", cfgPath, "--events", events, "show", "--at", "0"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "Year: 1000")
	assert.Contains(t, output, "1 event")
}

func TestOpenSession_UnopenableDatabaseDegrades(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "sub", "x.db")
	cfgPath := writeFile(t, "config.yaml", fmt.Sprintf(
		"data:\n  sql:\n    driver: sqlite3\n    dsn: %q\nlogging:\n  level: error\n", dsn))

	eventsBefore := testutil.ToFloat64(metrics.FetchFailures.WithLabelValues("events"))
	routesBefore := testutil.ToFloat64(metrics.FetchFailures.WithLabelValues("routes"))

	env, err := openSession(&GlobalFlags{Config: cfgPath})
	require.NoError(t, err)
	defer env.Close()

	assert.False(t, env.session.Enabled())
	assert.Empty(t, env.data.Events)
	assert.Empty(t, env.data.Routes)
	assert.Equal(t, eventsBefore+1, testutil.ToFloat64(metrics.FetchFailures.WithLabelValues("events")))
	assert.Equal(t, routesBefore+1, testutil.ToFloat64(metrics.FetchFailures.WithLabelValues("routes")))
}

func TestEndToEnd_DomainWithUnopenableDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "x.db")
	cfgPath := writeFile(t, "config.yaml", fmt.Sprintf(
		"data:\n  sql:\n    driver: sqlite3\n    dsn: %q\nlogging:\n  level: error\n", dsn))

	output := captureOutput(t, func() {
		err := RunWithArgs("test", []string{"--config", cfgPath, "domain"})
		require.NoError(t, err)
	})
	assert.Contains(t, output, "Control:       disabled")
}

func TestEndToEnd_InvalidModeOverride(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")

	err := RunWithArgs("test", []string{"--config", cfgPath, "--mode", "sideways", "domain"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timeline mode")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 event", plural(1, "event"))
	assert.Equal(t, "0 routes", plural(0, "route"))
	assert.Equal(t, "2,000 stops", plural(2000, "stop"))
}
