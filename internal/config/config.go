package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level tracehelper configuration
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Download DownloadConfig `yaml:"download"`
	Options  OptionsConfig  `yaml:"options"`
	EnvFile  string         `yaml:"env_file"`
}

// ServiceConfig defines how to reach the analysis service
type ServiceConfig struct {
	Address string `yaml:"address"`
	Timeout string `yaml:"timeout"`
}

// DownloadConfig defines where downloaded queries are written
type DownloadConfig struct {
	Dir string `yaml:"dir"`
}

// OptionsConfig holds the initial submission toggles
type OptionsConfig struct {
	IncludeSpans bool `yaml:"include_spans"`
	Verbose      bool `yaml:"verbose"`
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	// First check if file exists
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	// Check file permissions for security
	if err := CheckFilePermissions(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// env_file is relative to the config file, not the working directory
	if cfg.EnvFile != "" {
		cfg.EnvFile = resolvePath(cfg.EnvFile, filepath.Dir(path))
	}

	return cfg, nil
}

// Parse parses configuration from YAML bytes
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in zero values
func applyDefaults(cfg *Config) {
	if cfg.Service.Address == "" {
		cfg.Service.Address = constants.DefaultServiceAddress
	}
	if cfg.Service.Timeout == "" {
		cfg.Service.Timeout = constants.DefaultRequestTimeout.String()
	}
	if cfg.Download.Dir == "" {
		cfg.Download.Dir = constants.DefaultDownloadDir
	}
}

// RequestTimeout returns the parsed service timeout.
// Validate guarantees the value parses; the default is returned otherwise.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil || d <= 0 {
		return constants.DefaultRequestTimeout
	}
	return d
}

// SubmissionOptions converts the configured toggles to domain options
func (c *Config) SubmissionOptions() domain.SubmissionOptions {
	return domain.SubmissionOptions{
		IncludeSpans: c.Options.IncludeSpans,
		Verbose:      c.Options.Verbose,
	}
}
