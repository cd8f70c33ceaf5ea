package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Import ImportConfig `yaml:"import"`
	Output OutputConfig `yaml:"output"`
}

// ImportConfig holds configuration for sprite import and analysis
type ImportConfig struct {
	Analyze             bool     `yaml:"analyze"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	Hints               bool     `yaml:"hints"`
	ExtractShapes       bool     `yaml:"extract_shapes"`
	HalfSprite          bool     `yaml:"half_sprite"`
	SupportedFormats    []string `yaml:"supported_formats"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	OutputDir      string `yaml:"output_dir"`
	Suffix         string `yaml:"suffix"`
	PreviewScale   int    `yaml:"preview_scale"`
	StructuredForm bool   `yaml:"structured_form"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Analyze:             true,
			ConfidenceThreshold: 0.5,
			Hints:               false,
			ExtractShapes:       false,
			HalfSprite:          false,
			SupportedFormats:    []string{"png", "gif", "bmp", "webp"},
		},
		Output: OutputConfig{
			OutputDir:      "./output",
			Suffix:         "",
			PreviewScale:   8,
			StructuredForm: true,
		},
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Import.ConfidenceThreshold < 0 || c.Import.ConfidenceThreshold > 1 {
		return fmt.Errorf("import.confidence_threshold must be between 0 and 1")
	}

	if len(c.Import.SupportedFormats) == 0 {
		return fmt.Errorf("import.supported_formats cannot be empty")
	}

	if c.Output.PreviewScale < 1 {
		return fmt.Errorf("output.preview_scale must be positive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".config", "spritesem", "config.yaml")
}
