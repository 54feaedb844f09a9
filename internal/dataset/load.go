package dataset

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/timemap/internal/metrics"
)

// LoadAll loads events and routes concurrently. A failure of one kind is
// logged and replaced by an empty set; it never affects the other kind and
// is never returned to the caller.
func LoadAll(ctx context.Context, src Source) Dataset {
	var ds Dataset

	// The group only fans the two loads out. Failures are degraded inside
	// each goroutine, so neither returns an error or cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := src.LoadEvents(gctx)
		if err != nil {
			degrade("events", err)
			return nil
		}
		ds.Events = events
		return nil
	})
	g.Go(func() error {
		routes, err := src.LoadRoutes(gctx)
		if err != nil {
			degrade("routes", err)
			return nil
		}
		ds.Routes = routes
		return nil
	})
	_ = g.Wait()

	log.Info().
		Int("events", len(ds.Events)).
		Int("routes", len(ds.Routes)).
		Msg("dataset loaded")
	return ds
}

func degrade(kind string, err error) {
	metrics.FetchFailures.WithLabelValues(kind).Inc()
	log.Warn().Err(err).Str("kind", kind).Msg("data source unavailable, continuing with empty set")
}
