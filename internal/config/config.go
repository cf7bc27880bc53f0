// Package config loads the site configuration: defaults, then an optional
// yaml file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = ":8080"
	DefaultContactAddress = "osariemen7@gmail.com"
	DefaultMetricsDB      = "portfolio.db"
	DefaultRetentionDays  = 365
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Contact ContactConfig `yaml:"contact"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // "debug" | "release" | "test"
}

// ContactConfig holds contact form delivery settings
type ContactConfig struct {
	// Endpoint is the optional delivery endpoint. Empty means every
	// submission goes straight to the mail-client fallback.
	Endpoint              string        `yaml:"endpoint"`
	Address               string        `yaml:"address"`
	Timeout               time.Duration `yaml:"timeout"`
	ClearDraftOnRejection bool          `yaml:"clear_draft_on_rejection"`
}

// MetricsConfig holds visitor tracking settings
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DBPath        string `yaml:"db_path"`
	RetentionDays int    `yaml:"retention_days"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SearchPaths are tried in order when no explicit config file is given.
var SearchPaths = []string{
	"portfolio.yaml",
	"portfolio.yml",
	filepath.Join("configs", "default.yaml"),
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: DefaultAddr,
			Mode: "release",
		},
		Contact: ContactConfig{
			Address: DefaultContactAddress,
		},
		Metrics: MetricsConfig{
			Enabled:       true,
			DBPath:        DefaultMetricsDB,
			RetentionDays: DefaultRetentionDays,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// first file found in SearchPaths is used, if any.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		for _, p := range SearchPaths {
			if data, err := os.ReadFile(p); err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return nil, fmt.Errorf("failed to parse config file %s: %w", p, err)
				}
				break
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("PORTFOLIO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("PORTFOLIO_CONTACT_ENDPOINT"); v != "" {
		c.Contact.Endpoint = v
	}
	if v := os.Getenv("PORTFOLIO_CONTACT_ADDRESS"); v != "" {
		c.Contact.Address = v
	}
	if v := os.Getenv("PORTFOLIO_CONTACT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_CONTACT_TIMEOUT: %w", err)
		}
		c.Contact.Timeout = d
	}
	if v := os.Getenv("PORTFOLIO_CONTACT_CLEAR_ON_REJECTION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_CONTACT_CLEAR_ON_REJECTION: %w", err)
		}
		c.Contact.ClearDraftOnRejection = b
	}
	if v := os.Getenv("PORTFOLIO_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}
	if v := os.Getenv("PORTFOLIO_METRICS_DB"); v != "" {
		c.Metrics.DBPath = v
	}
	if v := os.Getenv("PORTFOLIO_METRICS_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_METRICS_RETENTION_DAYS: %w", err)
		}
		c.Metrics.RetentionDays = n
	}
	if v := os.Getenv("PORTFOLIO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.Contact.Endpoint != "" {
		u, err := url.Parse(c.Contact.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("contact.endpoint %q must be an absolute http(s) URL", c.Contact.Endpoint))
		}
	}
	if _, err := mail.ParseAddress(c.Contact.Address); err != nil {
		errs = append(errs, fmt.Errorf("contact.address %q is not a valid email address", c.Contact.Address))
	}
	if c.Contact.Timeout < 0 {
		errs = append(errs, errors.New("contact.timeout must not be negative"))
	}
	if c.Metrics.Enabled && c.Metrics.DBPath == "" {
		errs = append(errs, errors.New("metrics.db_path is required when metrics are enabled"))
	}
	if c.Metrics.RetentionDays < 1 {
		errs = append(errs, errors.New("metrics.retention_days must be at least 1"))
	}

	return errors.Join(errs...)
}

// HasEndpoint reports whether contact submissions are posted before falling
// back to the mail client.
func (c *Config) HasEndpoint() bool {
	return c.Contact.Endpoint != ""
}

// Retention is how long visitor rows are kept.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Metrics.RetentionDays) * 24 * time.Hour
}
