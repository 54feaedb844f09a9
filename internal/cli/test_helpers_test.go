package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/timemap/internal/config"
	"github.com/runnerr0/timemap/internal/dataset"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// sampleData is a small dataset touching every class and one record of
// each malformed kind.
func sampleData() dataset.Dataset {
	return dataset.Dataset{
		Events: []dataset.Event{
			{Index: 0, Time: 1000, Lat: 10, Lon: 20, Title: "A", Type: "human migration"},
			{Index: 1, Time: 1200, Lat: 30, Lon: 40, Title: "Wheat <reaches> Europe", Type: "crop spread",
				Refs: []string{"https://example.com/wheat"}},
			{Index: 2, Time: 1200, Lat: 5, Lon: 5, Title: "Plague", Type: "disease"},
			{Index: 3, Time: nan(), Lat: 0, Lon: 0, Title: "Undated", Type: "human"},
		},
		Routes: []dataset.Route{
			{Index: 0, Time: 1000, Title: "Silk Road", Path: []dataset.LatLon{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}},
			{Index: 1, Time: 1200, Title: "Lost", Path: nil},
		},
	}
}

// newTestEnv builds a session over data with the default config in mode.
func newTestEnv(t *testing.T, mode string, data dataset.Dataset) *sessionEnv {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timeline.Mode = mode
	env, err := newSessionEnv(cfg, data)
	require.NoError(t, err)
	return env
}

// writeFile writes content under a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
