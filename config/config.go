// Package config provides YAML configuration parsing for eventsim.
//
// The simulator runs with sensible defaults and needs no configuration file
// at all; this package exists so local setups can move the port or tighten
// the emission cadence without rebuilding.
//
// Example configuration:
//
//	title: Night shift rig
//	port: 3000
//	min_delay: 3s
//	max_delay: 5s
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the port the simulator listens on when unconfigured.
	// The companion dashboard's SSE_URL examples assume it.
	DefaultPort = 3000

	// DefaultMinDelay and DefaultMaxDelay bound the random pause between
	// emissions on one stream.
	DefaultMinDelay = 3 * time.Second
	DefaultMaxDelay = 5 * time.Second

	// minEmissionDelay is the lowest accepted min_delay. Anything faster is
	// almost certainly a typo'd unit and would flood the dashboard.
	minEmissionDelay = 10 * time.Millisecond
)

// Config is the root configuration structure for eventsim.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the info page title. Defaults to "eventsim" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 3000.
	Port int `yaml:"port"`

	// MinDelay is the lower bound of the random pause between emissions.
	// Accepts duration strings like "3s", "500ms". Defaults to 3s.
	MinDelay Duration `yaml:"min_delay"`

	// MaxDelay is the upper bound of the random pause between emissions.
	// Defaults to 5s. Must not be less than MinDelay.
	MaxDelay Duration `yaml:"max_delay"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given: port 3000
// and a 3–5 second emission delay.
func Default() *Config {
	return &Config{
		Port:     DefaultPort,
		MinDelay: Duration(DefaultMinDelay),
		MaxDelay: Duration(DefaultMaxDelay),
	}
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Defaults are applied for Port (3000), MinDelay (3s) and MaxDelay (5s)
// before validation, so a partial file only overrides what it names.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MinDelay == 0 {
		cfg.MinDelay = Duration(DefaultMinDelay)
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = Duration(DefaultMaxDelay)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks field ranges after defaults have been applied.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535], got %d", c.Port)
	}

	if c.MinDelay.Duration() < minEmissionDelay {
		return fmt.Errorf("min_delay must be at least %s, got %s",
			minEmissionDelay, c.MinDelay.Duration())
	}

	if c.MaxDelay.Duration() < c.MinDelay.Duration() {
		return fmt.Errorf("max_delay (%s) must not be less than min_delay (%s)",
			c.MaxDelay.Duration(), c.MinDelay.Duration())
	}

	return nil
}
