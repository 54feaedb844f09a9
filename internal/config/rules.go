package config

import "github.com/runnerr0/timemap/internal/classify"

// DefaultClassRules returns the built-in classification table in config
// form. Order matters: the first matching rule wins.
func DefaultClassRules() []RuleConfig {
	defaults := classify.DefaultRules()
	rules := make([]RuleConfig, len(defaults))
	for i, r := range defaults {
		rules[i] = RuleConfig{
			Match:   r.Match,
			Pattern: r.Pattern,
			Class:   r.Class.Name,
			Color:   r.Class.Color,
		}
	}
	return rules
}

// DefaultBasemaps returns the base layers offered by the layer toggle.
// The first one is shown on startup.
func DefaultBasemaps() []BasemapConfig {
	return []BasemapConfig{
		{
			Name:        "Carto Light (EN)",
			URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
			Attribution: "&copy; OpenStreetMap contributors &copy; CARTO (English base map)",
			MaxZoom:     19,
			Default:     true,
		},
		{
			Name:        "OSM (Local labels)",
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; OpenStreetMap contributors (Local labels)",
			MaxZoom:     19,
		},
	}
}
