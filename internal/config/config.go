// Package config loads qrgen settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/parser"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/synth"
	"gopkg.in/yaml.v3"
)

// Config holds all qrgen settings.
type Config struct {
	// BaseURL is prepended to each token to form the encoded link.
	BaseURL string `yaml:"base_url" env:"QRGEN_BASE_URL"`
	// Theme is the default theme when a request does not choose one.
	Theme string `yaml:"theme" env:"QRGEN_THEME"`
	// Prefix selects token cells.
	Prefix string `yaml:"prefix" env:"QRGEN_PREFIX"`
	// Extension is the archive entry extension.
	Extension string `yaml:"extension" env:"QRGEN_EXTENSION"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr           string `yaml:"addr" env:"QRGEN_ADDR"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"QRGEN_MAX_UPLOAD_BYTES"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   qrbatch.DefaultBaseURL,
		Theme:     string(synth.ThemeLight),
		Prefix:    parser.DefaultPrefix,
		Extension: qrbatch.DefaultExtension,
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks that the settings can drive a batch run.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q (must be an absolute http or https URL)", c.BaseURL)
	}
	switch synth.Theme(c.Theme) {
	case synth.ThemeLight, synth.ThemeDark:
	default:
		return fmt.Errorf("invalid theme: %s (must be light or dark)", c.Theme)
	}
	if c.Prefix == "" {
		return errors.New("prefix must not be empty")
	}
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload size: %d", c.Server.MaxUploadBytes)
	}
	return nil
}

// Options converts the settings into batch options.
func (c *Config) Options() qrbatch.Options {
	return qrbatch.Options{
		Theme:     synth.ParseTheme(c.Theme),
		BaseURL:   c.BaseURL,
		Prefix:    c.Prefix,
		Extension: c.Extension,
	}
}
