package render

import (
	"sort"

	"github.com/google/uuid"

	"github.com/runnerr0/timemap/internal/dataset"
)

// Feature kinds stored in Layers.
const (
	KindPoint = "point"
	KindPath  = "path"
)

// Feature is one attached layer.
type Feature struct {
	ID     Handle
	Kind   string
	Points []dataset.LatLon
	Style  Style
	Popup  string

	seq uint64
}

// Layers is an in-memory Port. It is not safe for concurrent use; callers
// serialise reconcile cycles.
type Layers struct {
	features map[Handle]Feature
	seq      uint64
}

// NewLayers returns an empty layer set.
func NewLayers() *Layers {
	return &Layers{features: make(map[Handle]Feature)}
}

func (l *Layers) attach(kind string, points []dataset.LatLon, style Style, popup string) Handle {
	h := Handle(uuid.NewString())
	l.seq++
	pts := make([]dataset.LatLon, len(points))
	copy(pts, points)
	l.features[h] = Feature{ID: h, Kind: kind, Points: pts, Style: style, Popup: popup, seq: l.seq}
	return h
}

// AttachPoint adds a point layer.
func (l *Layers) AttachPoint(at dataset.LatLon, style Style, popupHTML string) Handle {
	return l.attach(KindPoint, []dataset.LatLon{at}, style, popupHTML)
}

// AttachPath adds a polyline layer.
func (l *Layers) AttachPath(path []dataset.LatLon, style Style, popupHTML string) Handle {
	return l.attach(KindPath, path, style, popupHTML)
}

// Detach removes a layer. Unknown handles are ignored.
func (l *Layers) Detach(h Handle) {
	delete(l.features, h)
}

// Len returns the number of attached layers.
func (l *Layers) Len() int { return len(l.features) }

// Features returns the attached layers in attach order.
func (l *Layers) Features() []Feature {
	out := make([]Feature, 0, len(l.features))
	for _, f := range l.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
