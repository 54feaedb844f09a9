package viewer

import (
	"fmt"

	"github.com/runnerr0/timemap/internal/config"
)

// OptionsFromConfig resolves the timeline, filter and class sections of
// cfg into session options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	events, err := cfg.EventPolicy()
	if err != nil {
		return Options{}, fmt.Errorf("event policy: %w", err)
	}
	routes, err := cfg.RoutePolicy()
	if err != nil {
		return Options{}, fmt.Errorf("route policy: %w", err)
	}
	classes, err := cfg.Resolver()
	if err != nil {
		return Options{}, fmt.Errorf("class rules: %w", err)
	}
	return Options{
		Mode:        cfg.Mode(),
		Step:        cfg.Timeline.Step,
		EventPolicy: events,
		RoutePolicy: routes,
		Classes:     classes,
	}, nil
}
