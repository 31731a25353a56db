package config

import "time"

// ServiceConfig is the root configuration for a service instance.
type ServiceConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Gamma     APIConfig       `yaml:"gamma"`
	Clob      APIConfig       `yaml:"clob"`
	Collector CollectorConfig `yaml:"collector"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release, or test
}

// APIConfig holds settings for one upstream API.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// CollectorConfig holds event collection settings.
type CollectorConfig struct {
	Category      string `yaml:"category"`       // default category filter for collection runs
	BroadCategory string `yaml:"broad_category"` // parent grouping resolved through the tag index
}

// SamplerConfig holds price sampler settings.
type SamplerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
