package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/filter"
	"github.com/runnerr0/timemap/internal/timeline"
)

// Default config file path.
const DefaultConfigPath = "~/.config/timemap/config.yaml"

// Config holds all timemap configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Timeline TimelineConfig `yaml:"timeline"`
	Filter   FilterConfig   `yaml:"filter"`
	Classes  ClassesConfig  `yaml:"classes"`
	Map      MapConfig      `yaml:"map"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DataConfig struct {
	Events         string    `yaml:"events"`
	Routes         string    `yaml:"routes"`
	TimeoutSeconds int       `yaml:"timeout_seconds"`
	SQL            SQLConfig `yaml:"sql"`
}

// SQLConfig selects a database source instead of the JSON documents when
// Driver is set.
type SQLConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type TimelineConfig struct {
	Mode string  `yaml:"mode"`
	Step float64 `yaml:"step"`
}

type FilterConfig struct {
	Events PolicyConfig `yaml:"events"`
	Routes PolicyConfig `yaml:"routes"`
}

type PolicyConfig struct {
	Match string  `yaml:"match"`
	Width float64 `yaml:"width"`
}

type ClassesConfig struct {
	Default ClassConfig  `yaml:"default"`
	Rules   []RuleConfig `yaml:"rules"`
}

type ClassConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type RuleConfig struct {
	Match   string `yaml:"match"`
	Pattern string `yaml:"pattern"`
	Class   string `yaml:"class"`
	Color   string `yaml:"color"`
}

type MapConfig struct {
	Center   [2]float64      `yaml:"center"`
	Zoom     int             `yaml:"zoom"`
	Basemaps []BasemapConfig `yaml:"basemaps"`
}

type BasemapConfig struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Attribution string `yaml:"attribution" json:"attribution"`
	MaxZoom     int    `yaml:"max_zoom" json:"max_zoom"`
	Default     bool   `yaml:"default" json:"default"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	mode, err := timeline.ParseMode(c.Timeline.Mode)
	if err != nil {
		return err
	}
	if mode == timeline.Continuous && c.Timeline.Step <= 0 {
		return fmt.Errorf("timeline.step must be positive, got %v", c.Timeline.Step)
	}
	if _, err := c.EventPolicy(); err != nil {
		return fmt.Errorf("filter.events: %w", err)
	}
	if _, err := c.RoutePolicy(); err != nil {
		return fmt.Errorf("filter.routes: %w", err)
	}
	if _, err := c.Resolver(); err != nil {
		return fmt.Errorf("classes: %w", err)
	}
	switch strings.ToLower(c.Data.SQL.Driver) {
	case "", "sqlite3", "pgx":
	default:
		return fmt.Errorf("data.sql.driver %q is not supported (use sqlite3 or pgx)", c.Data.SQL.Driver)
	}
	return nil
}

// Mode returns the parsed timeline mode.
func (c *Config) Mode() timeline.Mode {
	mode, err := timeline.ParseMode(c.Timeline.Mode)
	if err != nil {
		return timeline.Continuous
	}
	return mode
}

// EventPolicy builds the match policy for events.
func (c *Config) EventPolicy() (filter.Policy, error) {
	return filter.ParsePolicy(c.Filter.Events.Match, c.Filter.Events.Width, c.Mode())
}

// RoutePolicy builds the match policy for routes.
func (c *Config) RoutePolicy() (filter.Policy, error) {
	return filter.ParsePolicy(c.Filter.Routes.Match, c.Filter.Routes.Width, c.Mode())
}

// Resolver compiles the configured class rules in order.
func (c *Config) Resolver() (*classify.Resolver, error) {
	rules := make([]classify.Rule, len(c.Classes.Rules))
	for i, r := range c.Classes.Rules {
		rules[i] = classify.Rule{
			Match:   r.Match,
			Pattern: r.Pattern,
			Class:   classify.VisualClass{Name: r.Class, Color: r.Color},
		}
	}
	fallback := classify.VisualClass{Name: c.Classes.Default.Name, Color: c.Classes.Default.Color}
	return classify.NewResolver(rules, fallback)
}
