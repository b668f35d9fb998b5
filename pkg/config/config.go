// Package config provides configuration loading and management for gradvol.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"volumegradient/pkg/gradient"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input parameters
	Input struct {
		// Dir is the directory containing the 2D JPEG slices of the volume
		Dir string `yaml:"dir"`

		// SliceGap is the physical distance between consecutive slices in mm
		SliceGap float64 `yaml:"sliceGap"`
	} `yaml:"input"`

	// Gradient sampling parameters
	Gradient struct {
		// InterpolationMode selects nearest, linear or cubic sampling.
		// Unknown names are rejected when the file is parsed.
		InterpolationMode gradient.InterpolationMode `yaml:"interpolationMode"`
	} `yaml:"gradient"`

	// Output parameters
	Output struct {
		// SaveSlices determines whether gradient magnitude slices are written
		SaveSlices bool `yaml:"saveSlices"`

		// SlicesDir is the directory magnitude slices are written to
		SlicesDir string `yaml:"slicesDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`

	// Probes are voxel-space positions sampled after the field is built
	Probes [][3]float64 `yaml:"probes"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Input.SliceGap = 1.0

	cfg.Gradient.InterpolationMode = gradient.Linear

	cfg.Output.SaveSlices = false
	cfg.Output.SlicesDir = "gradient_slices"
	cfg.Output.Verbose = true

	return cfg
}

// Validate reports configuration values that cannot be used
func (c *Config) Validate() error {
	if c.Input.SliceGap <= 0 {
		return fmt.Errorf("sliceGap must be positive, got %f", c.Input.SliceGap)
	}
	if !c.Gradient.InterpolationMode.Valid() {
		return fmt.Errorf("%w: %d", gradient.ErrInvalidInterpolationMode, c.Gradient.InterpolationMode)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
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

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
