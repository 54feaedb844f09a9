// Package metrics holds the Prometheus collectors shared by the loader,
// the reconciler and the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timemap_fetch_failures_total",
		Help: "Data source loads that failed and degraded to an empty dataset",
	}, []string{"kind"})

	SkippedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timemap_skipped_records_total",
		Help: "Records skipped because they could not be decoded or drawn",
	}, []string{"kind", "reason"})

	ReconcileCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timemap_reconcile_cycles_total",
		Help: "Completed clear-and-rebuild passes of the presentation layer",
	})

	AttachedLayers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timemap_attached_layers",
		Help: "Layers attached by the most recent reconcile cycle",
	}, []string{"kind"})

	PassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "timemap_pass_duration_seconds",
		Help:    "Duration of one filter and reconcile pass",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
)
