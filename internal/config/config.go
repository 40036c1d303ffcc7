// Package config loads the tool's YAML configuration and resolves the API
// credential.
package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const defaultTimeout = 120 * time.Second

// Environment variables recognized as overrides for config fields.
const (
	EnvBaseURL = "DEEPSEEK_BASE_URL"
	EnvModel   = "DEEPSEEK_MODEL"
)

type Config struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	Timeout   string `yaml:"timeout"`
	Outline   string `yaml:"outline"`
	OutputDir string `yaml:"output_dir"`
	Images    bool   `yaml:"images"`
	KeyFiles  bool   `yaml:"key_files"`
}

// GetTimeout returns the per-request timeout, falling back to two minutes
// when the configured value is missing or unparsable.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "grade6-science-prep", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the default path when path is empty.
// User settings are layered over the embedded defaults, then environment
// overrides are applied. A missing file is not an error: defaults are
// written there on first run, best-effort.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to the config path on first run. A failed
			// write is non-fatal: the embedded defaults still apply.
			_ = writeDefaults(path)
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshal onto the defaults so omitted fields keep their values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.Model == "" {
		return fmt.Errorf("model is required")
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %q", cfg.Timeout)
		}
	}
	if cfg.Outline == "" {
		return fmt.Errorf("outline path is required")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
