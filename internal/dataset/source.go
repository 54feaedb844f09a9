package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source loads the two record kinds. Implementations report failures as
// errors; LoadAll is responsible for degrading them to empty sets.
type Source interface {
	LoadEvents(ctx context.Context) ([]Event, error)
	LoadRoutes(ctx context.Context) ([]Route, error)
}

// FetchError describes a failed load of one record kind.
type FetchError struct {
	Kind     string // "events" or "routes"
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %q: %v", e.Kind, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UnavailableSource stands in for a source that could not be opened. Both
// loads fail with a FetchError, so LoadAll degrades each kind to an empty
// set like any other fetch failure.
type UnavailableSource struct {
	Location string
	Err      error
}

var _ Source = UnavailableSource{}

// LoadEvents always fails.
func (s UnavailableSource) LoadEvents(context.Context) ([]Event, error) {
	return nil, &FetchError{Kind: "events", Location: s.Location, Err: s.Err}
}

// LoadRoutes always fails.
func (s UnavailableSource) LoadRoutes(context.Context) ([]Route, error) {
	return nil, &FetchError{Kind: "routes", Location: s.Location, Err: s.Err}
}

// maxDocumentSize bounds how much of a JSON document is read.
const maxDocumentSize = 64 << 20

// JSONSource reads events and routes from JSON arrays. Each location is
// either a local file path or an http(s) URL. An empty location yields an
// empty set without error.
type JSONSource struct {
	Events string
	Routes string
	Client *http.Client
}

// NewJSONSource creates a JSONSource with an HTTP client using the given
// timeout.
func NewJSONSource(events, routes string, timeout time.Duration) *JSONSource {
	return &JSONSource{
		Events: events,
		Routes: routes,
		Client: &http.Client{Timeout: timeout},
	}
}

// LoadEvents fetches and decodes the events document.
func (s *JSONSource) LoadEvents(ctx context.Context) ([]Event, error) {
	if s.Events == "" {
		return nil, nil
	}
	data, err := s.fetch(ctx, s.Events)
	if err != nil {
		return nil, &FetchError{Kind: "events", Location: s.Events, Err: err}
	}
	events, err := DecodeEvents(data)
	if err != nil {
		return nil, &FetchError{Kind: "events", Location: s.Events, Err: err}
	}
	return events, nil
}

// LoadRoutes fetches and decodes the routes document.
func (s *JSONSource) LoadRoutes(ctx context.Context) ([]Route, error) {
	if s.Routes == "" {
		return nil, nil
	}
	data, err := s.fetch(ctx, s.Routes)
	if err != nil {
		return nil, &FetchError{Kind: "routes", Location: s.Routes, Err: err}
	}
	routes, err := DecodeRoutes(data)
	if err != nil {
		return nil, &FetchError{Kind: "routes", Location: s.Routes, Err: err}
	}
	return routes, nil
}

func isURL(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

// fetch returns the raw document at loc.
func (s *JSONSource) fetch(ctx context.Context, loc string) ([]byte, error) {
	if !isURL(loc) {
		data, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
