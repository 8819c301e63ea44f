package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the engine configuration
type Config struct {
	Validation ValidationConfig `json:"validation"`
	Conversion ConversionConfig `json:"conversion"`
	Stitch     StitchConfig     `json:"stitch"`
	Output     OutputConfig     `json:"output"`
}

// ValidationConfig holds constraints applied to source photos
type ValidationConfig struct {
	MinWidth       int     `json:"min_width"`
	MinHeight      int     `json:"min_height"`
	MaxSizeBytes   int     `json:"max_size_bytes"`
	MinAspectRatio float64 `json:"min_aspect_ratio"`
	MaxAspectRatio float64 `json:"max_aspect_ratio"`
}

// ConversionConfig holds settings for panorama conversion
type ConversionConfig struct {
	Quality       int    `json:"quality"`
	DefaultMethod string `json:"default_method"`
}

// StitchConfig holds defaults for multi-image stitching
type StitchConfig struct {
	DefaultLayout  string  `json:"default_layout"`
	DefaultOverlap float64 `json:"default_overlap"`
	DefaultQuality int     `json:"default_quality"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format          string `json:"format"`
	OutputDir       string `json:"output_dir"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Validation: ValidationConfig{
			MinWidth:       800,
			MinHeight:      600,
			MaxSizeBytes:   50 * 1024 * 1024,
			MinAspectRatio: 0.5,
			MaxAspectRatio: 4.0,
		},
		Conversion: ConversionConfig{
			Quality:       90,
			DefaultMethod: "perspective",
		},
		Stitch: StitchConfig{
			DefaultLayout:  "horizontal",
			DefaultOverlap: 0.2,
			DefaultQuality: 85,
		},
		Output: OutputConfig{
			Format:          "jpg",
			OutputDir:       "./output",
			ThumbnailWidth:  400,
			ThumbnailHeight: 200,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
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
	if c.Validation.MinWidth < 1 || c.Validation.MinHeight < 1 {
		return fmt.Errorf("validation.min_width and validation.min_height must be positive")
	}

	if c.Validation.MaxSizeBytes < 1 {
		return fmt.Errorf("validation.max_size_bytes must be positive")
	}

	if c.Validation.MinAspectRatio <= 0 || c.Validation.MaxAspectRatio <= c.Validation.MinAspectRatio {
		return fmt.Errorf("validation aspect ratio band must satisfy 0 < min < max")
	}

	if c.Conversion.Quality < 1 || c.Conversion.Quality > 100 {
		return fmt.Errorf("conversion.quality must be between 1 and 100")
	}

	if c.Stitch.DefaultOverlap < 0 || c.Stitch.DefaultOverlap >= 1 {
		return fmt.Errorf("stitch.default_overlap must be in [0, 1)")
	}

	if c.Stitch.DefaultQuality < 1 || c.Stitch.DefaultQuality > 100 {
		return fmt.Errorf("stitch.default_quality must be between 1 and 100")
	}

	if c.Output.ThumbnailWidth < 1 || c.Output.ThumbnailHeight < 1 {
		return fmt.Errorf("output thumbnail dimensions must be positive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "panoengine", "config.json")
}
