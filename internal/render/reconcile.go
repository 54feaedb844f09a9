package render

import (
	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/metrics"
)

// Result reports what one reconcile cycle attached.
type Result struct {
	Events  int `json:"events"`
	Routes  int `json:"routes"`
	Skipped int `json:"skipped"`
}

// Reconciler owns the handles attached by its previous cycle. Each cycle
// detaches all of them before attaching a fresh handle per visible record,
// so stale layers never survive a time change.
type Reconciler struct {
	port    Port
	classes *classify.Resolver
	handles []Handle
}

// NewReconciler creates a Reconciler drawing into port.
func NewReconciler(port Port, classes *classify.Resolver) *Reconciler {
	return &Reconciler{port: port, classes: classes}
}

// Reconcile replaces the previous cycle's layers with layers for events and
// routes. Records without drawable geometry are skipped individually.
func (r *Reconciler) Reconcile(events []dataset.Event, routes []dataset.Route) Result {
	r.Clear()

	var res Result
	for _, e := range events {
		if !e.HasGeometry() {
			r.skip("event", e.Index, e.Title)
			res.Skipped++
			continue
		}
		style := PointStyle(r.classes.Classify(e.Type))
		r.handles = append(r.handles, r.port.AttachPoint(e.Position(), style, EventPopup(e)))
		res.Events++
	}
	for _, rt := range routes {
		if !rt.HasGeometry() {
			r.skip("route", rt.Index, rt.Title)
			res.Skipped++
			continue
		}
		r.handles = append(r.handles, r.port.AttachPath(rt.Path, PathStyle(), RoutePopup(rt)))
		res.Routes++
	}

	metrics.ReconcileCycles.Inc()
	metrics.AttachedLayers.WithLabelValues("event").Set(float64(res.Events))
	metrics.AttachedLayers.WithLabelValues("route").Set(float64(res.Routes))
	return res
}

// Clear detaches every handle from the previous cycle.
func (r *Reconciler) Clear() {
	for _, h := range r.handles {
		r.port.Detach(h)
	}
	r.handles = r.handles[:0]
}

// Attached returns how many handles the last cycle left attached.
func (r *Reconciler) Attached() int { return len(r.handles) }

func (r *Reconciler) skip(kind string, index int, title string) {
	metrics.SkippedRecords.WithLabelValues(kind, "geometry").Inc()
	log.Debug().Str("kind", kind).Int("index", index).Str("title", title).Msg("record has no drawable geometry")
}
