// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"github.com/Opteo/maps/internal/geo"
	"github.com/Opteo/maps/internal/staticmap"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Condense  Condense        `yaml:"condense,omitempty"`
	Nominatim Nominatim       `yaml:"nominatim,omitempty"`
	StaticMap staticmap.Style `yaml:"staticmap,omitempty"`
}

// Condense tunes the coordinate condensation.
type Condense struct {
	IntervalFrequency float64 `yaml:"interval_frequency,omitempty"`
	CoarseFrequency   float64 `yaml:"coarse_frequency,omitempty"`
	MaxPolygons       int     `yaml:"max_polygons,omitempty"`
}

// Nominatim configures the geocoding client.
type Nominatim struct {
	BaseURL           string  `yaml:"base_url,omitempty"`
	UserAgent         string  `yaml:"user_agent,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
}

// Default returns the canonical configuration used when no file is given.
func Default() *Config {
	return &Config{
		Condense: Condense{
			IntervalFrequency: 200,
			CoarseFrequency:   10,
			MaxPolygons:       10,
		},
		Nominatim: Nominatim{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "opteo-maps/1.0",
			RequestsPerSecond: 1,
		},
		StaticMap: staticmap.DefaultStyle(),
	}
}

// Load reads and parses the YAML configuration file from the specified
// path. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CondenseOptions maps the tuning section onto the condenser's options.
func (c *Config) CondenseOptions() geo.Options {
	return geo.Options{
		IntervalFrequency: c.Condense.IntervalFrequency,
		CoarseFrequency:   c.Condense.CoarseFrequency,
		MaxPolygons:       c.Condense.MaxPolygons,
	}
}
