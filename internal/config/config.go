// Package config loads and validates spray-card analyzer settings.
// Settings come from an optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/spraycard-mcp/internal/imaging"
	"github.com/ironsheep/spraycard-mcp/internal/spray"
)

// Environment variables that override file settings.
const (
	EnvLogLevel = "SPRAYCARD_LOG_LEVEL"
	EnvSections = "SPRAYCARD_SECTIONS"
	EnvHTTPAddr = "SPRAYCARD_HTTP_ADDR"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	Analysis struct {
		// SectionCount is the number of vertical bands per card.
		SectionCount int `yaml:"sectionCount"`
	} `yaml:"analysis"`

	Output struct {
		// WriteOverlay saves the annotated mask next to each input.
		WriteOverlay bool `yaml:"writeOverlay"`

		// WriteChart saves a per-section bar chart next to each input.
		WriteChart bool `yaml:"writeChart"`

		// Suffix is inserted before the extension of exported files.
		Suffix string `yaml:"suffix"`

		// JPEGQuality applies when the overlay is written as JPEG.
		JPEGQuality int `yaml:"jpegQuality"`

		BorderColor string `yaml:"borderColor"`
		LabelColor  string `yaml:"labelColor"`

		// BorderWidth in pixels; 0 picks a width from the image size.
		BorderWidth int `yaml:"borderWidth"`

		// Title is written above the overlay. Empty leaves it off.
		Title string `yaml:"title"`
	} `yaml:"output"`

	Label struct {
		// Enabled runs OCR over Region to read the card identifier.
		Enabled  bool            `yaml:"enabled"`
		Language string          `yaml:"language"`
		Region   *imaging.Region `yaml:"region"`
	} `yaml:"label"`

	Batch struct {
		// Workers bounds how many cards are analyzed at once.
		Workers int `yaml:"workers"`
	} `yaml:"batch"`

	HTTP struct {
		Addr           string `yaml:"addr"`
		MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	} `yaml:"http"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Analysis.SectionCount = spray.DefaultSectionCount

	cfg.Output.WriteOverlay = true
	cfg.Output.WriteChart = false
	cfg.Output.Suffix = "_analyzed"
	cfg.Output.JPEGQuality = 90
	cfg.Output.BorderColor = "#000000"
	cfg.Output.LabelColor = "#FF0000"
	cfg.Output.Title = "Spray Coverage percentage in each section"

	cfg.Label.Language = "eng"

	cfg.Batch.Workers = 4

	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.MaxUploadBytes = 20 << 20

	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// An empty path or a missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile writes the default configuration to configPath.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// ApplyEnv overrides settings from environment variables. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvHTTPAddr); ok && v != "" {
		c.HTTP.Addr = v
	}
	if v, ok := lookup(EnvSections); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", spray.ErrInvalidConfiguration, EnvSections, v)
		}
		c.Analysis.SectionCount = n
	}
	return nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.Analysis.SectionCount < 1 {
		return fmt.Errorf("%w: analysis.sectionCount must be at least 1, got %d",
			spray.ErrInvalidConfiguration, c.Analysis.SectionCount)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("%w: output.jpegQuality must be in [1, 100], got %d",
			spray.ErrInvalidConfiguration, c.Output.JPEGQuality)
	}
	if c.Output.BorderWidth < 0 {
		return fmt.Errorf("%w: output.borderWidth must not be negative", spray.ErrInvalidConfiguration)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be at least 1, got %d",
			spray.ErrInvalidConfiguration, c.Batch.Workers)
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: http.maxUploadBytes must be positive", spray.ErrInvalidConfiguration)
	}
	if c.Label.Enabled && c.Label.Region == nil {
		return fmt.Errorf("%w: label.region is required when label.enabled is set",
			spray.ErrInvalidConfiguration)
	}
	return nil
}
