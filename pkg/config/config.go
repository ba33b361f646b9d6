// Package config loads daemon configuration from a YAML file with sensible
// defaults. A missing config file is not an error; the defaults stand.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/packsmith/langres/pkg/logger"
)

// Duration wraps time.Duration with YAML decoding from strings like "24h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Baseline configures the remote baseline cache.
type Baseline struct {
	// Enabled controls whether the baseline layer participates at all.
	Enabled bool `yaml:"enabled"`

	// BaseURL is the endpoint template with a %s locale placeholder.
	// Empty selects the built-in default.
	BaseURL string `yaml:"base_url"`

	// CacheDir holds per-locale cache files. Empty selects the user cache dir.
	CacheDir string `yaml:"cache_dir"`

	// TTL is the freshness window, e.g. "24h".
	TTL Duration `yaml:"ttl"`

	// Timeout bounds one fetch attempt, e.g. "10s".
	Timeout Duration `yaml:"timeout"`
}

// Config is the daemon configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Locale is the initially active locale.
	Locale string `yaml:"locale"`

	// CandidateRoots are workspace-derived directories scanned for override
	// sources.
	CandidateRoots []string `yaml:"candidate_roots"`

	// ConfiguredRoots are explicitly configured source directories, scanned
	// after the candidates.
	ConfiguredRoots []string `yaml:"configured_roots"`

	Baseline Baseline      `yaml:"baseline"`
	Log      logger.Config `yaml:"log"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Listen: ":7077",
		Locale: "en_US",
		Baseline: Baseline{
			Enabled: true,
			TTL:     Duration(24 * time.Hour),
			Timeout: Duration(10 * time.Second),
		},
		Log: logger.Config{Level: "info", Format: "text"},
	}
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
