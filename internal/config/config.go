// Package config loads the application configuration from a YAML file with
// environment overrides (SA_ prefix, e.g. SA_SERVER_PORT=9000).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// Config holds the application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Segmenter  SegmenterConfig  `koanf:"segmenter"`
	Fetch      FetchConfig      `koanf:"fetch"`
	Processing ProcessingConfig `koanf:"processing"`
	Batch      BatchConfig      `koanf:"batch"`
}

// ServerConfig defines the HTTP server settings.
type ServerConfig struct {
	Host  string `koanf:"host"`
	Port  int    `koanf:"port"`
	Debug bool   `koanf:"debug"`
}

// SegmenterConfig points at the segmentation inference server.
type SegmenterConfig struct {
	URL     string        `koanf:"url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// FetchConfig controls image acquisition.
type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
	Retries int           `koanf:"retries"`
}

// ProcessingConfig controls the payload sent to the segmenter.
type ProcessingConfig struct {
	SendFormat  string `koanf:"sendformat"`
	SendMaxDim  int    `koanf:"sendmaxdim"`
	SendQuality int    `koanf:"sendquality"`
}

// BatchConfig bounds batch evaluation.
type BatchConfig struct {
	Workers int `koanf:"workers"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":            "0.0.0.0",
		"server.port":            8000,
		"server.debug":           false,
		"segmenter.url":          "http://localhost:8500",
		"segmenter.model":        "nvidia/segformer-b0-finetuned-cityscapes-1024-1024",
		"segmenter.timeout":      time.Minute,
		"fetch.timeout":          10 * time.Second,
		"fetch.retries":          2,
		"processing.sendformat":  "jpg",
		"processing.sendmaxdim":  1024,
		"processing.sendquality": 85,
		"batch.workers":          4,
	}
}

// Load reads configuration from the given YAML file (skipped when the path
// is empty or missing) and applies SA_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("SA_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SA_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Segmenter.URL == "" {
		return fmt.Errorf("segmenter.url cannot be empty")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries cannot be negative")
	}
	if c.Processing.SendQuality < 1 || c.Processing.SendQuality > 100 {
		return fmt.Errorf("processing.sendquality must be between 1 and 100")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be positive")
	}
	return nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
