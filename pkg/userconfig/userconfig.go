// Package userconfig provides user-level configuration for walpha.
// This configuration is stored in ~/.config/walpha/config.yaml and holds the
// settings of the query client and of the table formatter.
package userconfig

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/walpha-cli/walpha/pkg/paths"
)

// CurrentVersion is the current version of the user config format
const CurrentVersion = "v1"

// Config represents the user-level walpha configuration
type Config struct {
	// Version is the config format version
	Version string `yaml:"version,omitempty"`
	// BaseURL is the address of the query page
	BaseURL string `yaml:"base_url,omitempty"`
	// UserAgent overrides the User-Agent header
	UserAgent string `yaml:"user_agent,omitempty"`
	// Headers replaces the default request headers
	Headers map[string]string `yaml:"headers,omitempty"`
	// AllPods also loads the pods that the result page fetches asynchronously.
	// Defaults to true.
	AllPods *bool `yaml:"all_pods,omitempty"`
	// Timeout is the per request timeout, e.g. "30s"
	Timeout string `yaml:"timeout,omitempty"`
	// Concurrency bounds the number of pods fetched at once
	Concurrency int `yaml:"concurrency,omitempty"`
	// CacheTTL keeps results in memory for the given duration
	CacheTTL string `yaml:"cache_ttl,omitempty"`
	// RespectRobots checks robots.txt before querying
	RespectRobots bool `yaml:"respect_robots,omitempty"`
	// WideChars measures East Asian wide characters as two columns
	WideChars bool `yaml:"wide_chars,omitempty"`
}

// Path returns the path to the config file
func Path() string {
	return filepath.Join(paths.GetConfigDir(), "config.yaml")
}

// LoadFrom reads and parses the config file at path, returning an empty
// config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Ensure version is always set to current version when saving
	c.Version = CurrentVersion

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

// Validate checks values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base_url %q: only http and https are supported", c.BaseURL)
		}
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency cannot be negative")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.CacheTTLDuration(); err != nil {
		return err
	}
	return nil
}

// IncludeAllPods reports whether asynchronous pods should be fetched.
func (c *Config) IncludeAllPods() bool {
	return c.AllPods == nil || *c.AllPods
}

// TimeoutDuration returns the parsed timeout, zero when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// CacheTTLDuration returns the parsed cache TTL, zero when unset.
func (c *Config) CacheTTLDuration() (time.Duration, error) {
	return parseDuration("cache_ttl", c.CacheTTL)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: cannot be negative", field)
	}
	return d, nil
}
