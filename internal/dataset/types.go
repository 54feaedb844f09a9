package dataset

import "math"

// LatLon is a single geographic coordinate in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both coordinates are finite.
func (p LatLon) Valid() bool {
	return isFinite(p.Lat) && isFinite(p.Lon)
}

// Event is a point record on the map.
type Event struct {
	Index  int // position in the source array
	Time   float64
	Lat    float64
	Lon    float64
	Title  string
	Type   string
	Desc   string
	Images []string
	Refs   []string
}

// When returns the event time.
func (e Event) When() float64 { return e.Time }

// Position returns the event coordinate.
func (e Event) Position() LatLon { return LatLon{Lat: e.Lat, Lon: e.Lon} }

// HasGeometry reports whether the event can be placed on the map.
func (e Event) HasGeometry() bool { return e.Position().Valid() }

// Route is a migration path. Path points with non-finite coordinates are
// dropped while decoding, so an empty Path means nothing can be drawn.
type Route struct {
	Index int
	Time  float64
	Title string
	Desc  string
	Path  []LatLon
	Refs  []string
}

// When returns the route time.
func (r Route) When() float64 { return r.Time }

// HasGeometry reports whether the route has at least one point.
func (r Route) HasGeometry() bool { return len(r.Path) > 0 }

// Dataset holds everything loaded at startup. It is never mutated after
// LoadAll returns; visible sets are always derived copies.
type Dataset struct {
	Events []Event
	Routes []Route
}

// Times returns the raw time values per record kind, events first.
func (d Dataset) Times() [][]float64 {
	events := make([]float64, len(d.Events))
	for i, e := range d.Events {
		events[i] = e.Time
	}
	routes := make([]float64, len(d.Routes))
	for i, r := range d.Routes {
		routes[i] = r.Time
	}
	return [][]float64{events, routes}
}

// Summary counts records per kind and how many of them carry no usable time
// or geometry.
type Summary struct {
	Events         int `json:"events"`
	Routes         int `json:"routes"`
	UntimedEvents  int `json:"untimed_events"`
	UntimedRoutes  int `json:"untimed_routes"`
	UnplacedEvents int `json:"unplaced_events"`
	EmptyRoutes    int `json:"empty_routes"`
}

// Summarize computes a Summary for d.
func (d Dataset) Summarize() Summary {
	s := Summary{Events: len(d.Events), Routes: len(d.Routes)}
	for _, e := range d.Events {
		if !isFinite(e.Time) {
			s.UntimedEvents++
		}
		if !e.HasGeometry() {
			s.UnplacedEvents++
		}
	}
	for _, r := range d.Routes {
		if !isFinite(r.Time) {
			s.UntimedRoutes++
		}
		if !r.HasGeometry() {
			s.EmptyRoutes++
		}
	}
	return s
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
