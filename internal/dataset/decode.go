package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/metrics"
)

// number decodes any JSON value into a float64. Values that are not numbers
// (or numeric strings) become NaN so they are treated as non-finite later
// instead of failing the whole record.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*n = number(math.NaN())
			return nil
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = number(math.NaN())
		return nil
	}
	*n = number(f)
	return nil
}

func value(n *number) float64 {
	if n == nil {
		return math.NaN()
	}
	return float64(*n)
}

type rawPoint struct {
	Lat *number `json:"lat"`
	Lon *number `json:"lon"`
}

type rawEvent struct {
	Time   *number  `json:"time"`
	Lat    *number  `json:"lat"`
	Lon    *number  `json:"lon"`
	Title  string   `json:"title"`
	Type   string   `json:"type"`
	Desc   string   `json:"desc"`
	Images []string `json:"images"`
	Refs   []string `json:"refs"`
}

type rawRoute struct {
	Time  *number    `json:"time"`
	Title string     `json:"title"`
	Desc  string     `json:"desc"`
	Path  []rawPoint `json:"path"`
	Refs  []string   `json:"refs"`
}

// splitArray decodes the top-level JSON array without decoding its elements,
// so one bad element cannot discard its neighbours.
func splitArray(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}
	return items, nil
}

// DecodeEvents parses a JSON array of events. Elements that are not objects
// of the expected shape are skipped and counted.
func DecodeEvents(data []byte) ([]Event, error) {
	items, err := splitArray(data)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for i, item := range items {
		var raw rawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			log.Debug().Err(err).Int("index", i).Str("kind", "event").Msg("skipping malformed record")
			metrics.SkippedRecords.WithLabelValues("event", "decode").Inc()
			continue
		}
		events = append(events, Event{
			Index:  i,
			Time:   value(raw.Time),
			Lat:    value(raw.Lat),
			Lon:    value(raw.Lon),
			Title:  raw.Title,
			Type:   raw.Type,
			Desc:   raw.Desc,
			Images: raw.Images,
			Refs:   raw.Refs,
		})
	}
	return events, nil
}

// DecodeRoutes parses a JSON array of routes. Path points without finite
// coordinates are dropped.
func DecodeRoutes(data []byte) ([]Route, error) {
	items, err := splitArray(data)
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(items))
	for i, item := range items {
		var raw rawRoute
		if err := json.Unmarshal(item, &raw); err != nil {
			log.Debug().Err(err).Int("index", i).Str("kind", "route").Msg("skipping malformed record")
			metrics.SkippedRecords.WithLabelValues("route", "decode").Inc()
			continue
		}
		routes = append(routes, Route{
			Index: i,
			Time:  value(raw.Time),
			Title: raw.Title,
			Desc:  raw.Desc,
			Path:  pathOf(raw.Path),
			Refs:  raw.Refs,
		})
	}
	return routes, nil
}

func pathOf(raw []rawPoint) []LatLon {
	path := make([]LatLon, 0, len(raw))
	for _, p := range raw {
		pt := LatLon{Lat: value(p.Lat), Lon: value(p.Lon)}
		if pt.Valid() {
			path = append(path, pt)
		}
	}
	return path
}

// ParsePath decodes a JSON array of {lat, lon} objects, as stored by the SQL
// source.
func ParsePath(data []byte) ([]LatLon, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw []rawPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	return pathOf(raw), nil
}
