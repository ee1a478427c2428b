package main

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the stress scenario, loadable from a TOML file with flag
// overrides on top.
type Config struct {
	Duration       duration `toml:"duration"`
	Entities       int      `toml:"entities"`
	ChurnPerTick   int      `toml:"churn_per_tick"`
	Seed           int64    `toml:"seed"`
	Profile        string   `toml:"profile"` // "", "cpu" or "mem"
	GCPauseMetrics bool     `toml:"gc_pause_metrics"`
}

func defaultConfig() Config {
	return Config{
		Duration:     duration{10 * time.Second},
		Entities:     10000,
		ChurnPerTick: 100,
		Seed:         1,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// duration makes time.Duration TOML-decodable from strings like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
