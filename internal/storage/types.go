package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/runnerr0/timemap/internal/dataset"
)

// eventRow mirrors one row of the events table.
type eventRow struct {
	Position    int
	Time        sql.NullFloat64
	Lat         sql.NullFloat64
	Lon         sql.NullFloat64
	Title       string
	Category    string
	Description string
	Images      string
	Refs        string
}

// routeRow mirrors one row of the routes table.
type routeRow struct {
	Position    int
	Time        sql.NullFloat64
	Title       string
	Description string
	Path        string
	Refs        string
}

func (r eventRow) toEvent() (dataset.Event, error) {
	images, err := stringList(r.Images)
	if err != nil {
		return dataset.Event{}, fmt.Errorf("images: %w", err)
	}
	refs, err := stringList(r.Refs)
	if err != nil {
		return dataset.Event{}, fmt.Errorf("refs: %w", err)
	}
	return dataset.Event{
		Index:  r.Position,
		Time:   nullable(r.Time),
		Lat:    nullable(r.Lat),
		Lon:    nullable(r.Lon),
		Title:  r.Title,
		Type:   r.Category,
		Desc:   r.Description,
		Images: images,
		Refs:   refs,
	}, nil
}

func (r routeRow) toRoute() (dataset.Route, error) {
	path, err := dataset.ParsePath([]byte(r.Path))
	if err != nil {
		return dataset.Route{}, err
	}
	refs, err := stringList(r.Refs)
	if err != nil {
		return dataset.Route{}, fmt.Errorf("refs: %w", err)
	}
	return dataset.Route{
		Index: r.Position,
		Time:  nullable(r.Time),
		Title: r.Title,
		Desc:  r.Description,
		Path:  path,
		Refs:  refs,
	}, nil
}

// nullable maps SQL NULL to NaN so it is treated like a missing JSON value.
func nullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func stringList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
