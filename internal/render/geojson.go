package render

import "github.com/runnerr0/timemap/internal/dataset"

// FeatureCollection is the GeoJSON export of a layer set.
type FeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature is a single exported layer.
type GeoJSONFeature struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry holds Point or LineString coordinates in [lon, lat] order.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// FeatureProperties carries what a client needs to draw the layer.
type FeatureProperties struct {
	Kind  string `json:"kind"`
	Style Style  `json:"style"`
	Popup string `json:"popup"`
}

// GeoJSON exports the attached layers in attach order. A path with a
// single point is exported as a Point since a LineString needs two.
func (l *Layers) GeoJSON() FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []GeoJSONFeature{}}
	for _, f := range l.Features() {
		fc.Features = append(fc.Features, GeoJSONFeature{
			Type:     "Feature",
			ID:       string(f.ID),
			Geometry: geometryOf(f.Points),
			Properties: FeatureProperties{
				Kind:  f.Kind,
				Style: f.Style,
				Popup: f.Popup,
			},
		})
	}
	return fc
}

func geometryOf(points []dataset.LatLon) Geometry {
	if len(points) == 1 {
		return Geometry{Type: "Point", Coordinates: position(points[0])}
	}
	coords := make([][2]float64, len(points))
	for i, p := range points {
		coords[i] = position(p)
	}
	return Geometry{Type: "LineString", Coordinates: coords}
}

func position(p dataset.LatLon) [2]float64 {
	return [2]float64{p.Lon, p.Lat}
}
