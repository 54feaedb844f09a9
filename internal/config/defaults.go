package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Events:         "data/events.json",
			Routes:         "data/routes.json",
			TimeoutSeconds: 10,
			SQL: SQLConfig{
				Driver: "",
				DSN:    "",
			},
		},
		Timeline: TimelineConfig{
			Mode: "continuous",
			Step: 100,
		},
		Filter: FilterConfig{
			Events: PolicyConfig{Match: "auto", Width: 1000},
			Routes: PolicyConfig{Match: "auto", Width: 2000},
		},
		Classes: ClassesConfig{
			Default: ClassConfig{Name: "other", Color: "#f39c12"},
			Rules:   DefaultClassRules(),
		},
		Map: MapConfig{
			Center:   [2]float64{20, 0},
			Zoom:     2,
			Basemaps: DefaultBasemaps(),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8722,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "",
		},
	}
}
