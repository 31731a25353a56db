package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *ServiceConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release, or test, got %q", c.Server.Mode)
	}

	if err := c.Gamma.validate("gamma"); err != nil {
		return err
	}
	if err := c.Clob.validate("clob"); err != nil {
		return err
	}

	if c.Collector.BroadCategory == "" {
		return errors.New("collector.broad_category is required")
	}

	if c.Sampler.Interval < 0 {
		return errors.New("sampler.interval must be >= 0")
	}
	if c.Sampler.Concurrency < 1 {
		return errors.New("sampler.concurrency must be >= 1")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return nil
}

func (api *APIConfig) validate(prefix string) error {
	if api.BaseURL == "" {
		return fmt.Errorf("%s.base_url is required", prefix)
	}
	if !strings.HasPrefix(api.BaseURL, "http://") && !strings.HasPrefix(api.BaseURL, "https://") {
		return fmt.Errorf("%s.base_url must be an http(s) URL, got %q", prefix, api.BaseURL)
	}
	if api.MaxRetries < 0 {
		return fmt.Errorf("%s.max_retries must be >= 0", prefix)
	}
	return nil
}
