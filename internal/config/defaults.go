package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerPort         = 8000
	DefaultServerMode         = "release"
	DefaultGammaURL           = "https://gamma-api.polymarket.com"
	DefaultClobURL            = "https://clob.polymarket.com"
	DefaultAPITimeout         = 30 * time.Second
	DefaultMaxRetries         = 3
	DefaultCategory           = "crypto/15M"
	DefaultBroadCategory      = "crypto"
	DefaultSampleInterval     = 30 * time.Second
	DefaultSampleConcurrency  = 10
	DefaultSampleFetchTimeout = 10 * time.Second
	DefaultMetricsPath        = "/metrics"
)

func (c *ServiceConfig) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}

	// Upstream API defaults
	if c.Gamma.BaseURL == "" {
		c.Gamma.BaseURL = DefaultGammaURL
	}
	if c.Clob.BaseURL == "" {
		c.Clob.BaseURL = DefaultClobURL
	}
	applyAPIDefaults(&c.Gamma)
	applyAPIDefaults(&c.Clob)

	// Collector defaults
	if c.Collector.Category == "" {
		c.Collector.Category = DefaultCategory
	}
	if c.Collector.BroadCategory == "" {
		c.Collector.BroadCategory = DefaultBroadCategory
	}

	// Sampler defaults
	if c.Sampler.Interval == 0 {
		c.Sampler.Interval = DefaultSampleInterval
	}
	if c.Sampler.Concurrency == 0 {
		c.Sampler.Concurrency = DefaultSampleConcurrency
	}
	if c.Sampler.Timeout == 0 {
		c.Sampler.Timeout = DefaultSampleFetchTimeout
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyAPIDefaults(api *APIConfig) {
	if api.Timeout == 0 {
		api.Timeout = DefaultAPITimeout
	}
	if api.MaxRetries == 0 {
		api.MaxRetries = DefaultMaxRetries
	}
}
