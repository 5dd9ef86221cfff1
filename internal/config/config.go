// Package config loads application configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errInvalidScale = errors.New("config: capture scale must be between 0.1 and 4")
	errInvalidTTL   = errors.New("config: session ttlMinutes must be positive")
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Capture struct {
		ChromePath     string  `yaml:"chromePath"`
		NoSandbox      bool    `yaml:"noSandbox"`
		AutoDownload   bool    `yaml:"autoDownload"`
		Scale          float64 `yaml:"scale"`
		ViewportWidth  int     `yaml:"viewportWidth"`
		TimeoutSeconds int     `yaml:"timeoutSeconds"`
	} `yaml:"capture"`

	Session struct {
		TTLMinutes int `yaml:"ttlMinutes"`
	} `yaml:"session"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads the YAML config at path and applies defaults for any field
// left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

// Default returns a Config with all defaults applied, used when no config
// file is supplied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Capture.Scale == 0 {
		c.Capture.Scale = 2
	}
	if c.Capture.ViewportWidth == 0 {
		c.Capture.ViewportWidth = 1280
	}
	if c.Capture.TimeoutSeconds == 0 {
		c.Capture.TimeoutSeconds = 60
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
}

func (c *Config) validate() error {
	if c.Capture.Scale < 0.1 || c.Capture.Scale > 4 {
		return fmt.Errorf("%w: got %g", errInvalidScale, c.Capture.Scale)
	}
	if c.Session.TTLMinutes < 1 {
		return fmt.Errorf("%w: got %d", errInvalidTTL, c.Session.TTLMinutes)
	}
	return nil
}

// CaptureTimeout returns the per-capture timeout as a duration.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Capture.TimeoutSeconds) * time.Second
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
