// Package render turns visible records into presentation layers: it builds
// popup markup, picks styles and keeps the attached layer set in step with
// the time control.
package render

import (
	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/dataset"
)

// Handle identifies one attached layer. It is opaque to the reconciler.
type Handle string

// Port is the presentation collaborator (a map library, an exporter, a
// test recorder). Attach and Detach must be idempotent and order
// independent; detaching an unknown handle is a no-op.
type Port interface {
	AttachPoint(at dataset.LatLon, style Style, popupHTML string) Handle
	AttachPath(path []dataset.LatLon, style Style, popupHTML string) Handle
	Detach(h Handle)
}

// Style carries the drawing attributes of a layer, named after the usual
// Leaflet path options.
type Style struct {
	Radius      float64 `json:"radius,omitempty"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor,omitempty"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	Class       string  `json:"class,omitempty"`
}

// RouteColor is the stroke used for every route.
const RouteColor = "#34495e"

// PointStyle is the circle marker style for an event of class c.
func PointStyle(c classify.VisualClass) Style {
	return Style{
		Radius:      6,
		Color:       "#000",
		FillColor:   c.Color,
		Weight:      1,
		FillOpacity: 0.85,
		Class:       c.Name,
	}
}

// PathStyle is the polyline style for routes.
func PathStyle() Style {
	return Style{
		Color:   RouteColor,
		Weight:  3,
		Opacity: 0.8,
		Class:   "route",
	}
}
