// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Inputs
	DataPath     string `json:"data_path,omitempty"`     // Path to the survey data CSV file
	CodebookPath string `json:"codebook_path,omitempty"` // Path to the survey variables JSON file

	// Dataset shape
	IDColumn     string `json:"id_column,omitempty"`     // Identifier column name
	WeightColumn string `json:"weight_column,omitempty"` // Weight column name

	// Behavior
	Tolerance   float64 `json:"tolerance,omitempty" validate:"gte=0"` // Absolute tolerance for weighted-frequency comparison
	DatabaseURL string  `json:"database_url,omitempty" validate:"omitempty,uri"`
	Verbose     bool    `json:"verbose,omitempty"` // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values using the validator.
// Input path existence is not checked here; the loaders report missing files
// with their own structured errors.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.CodebookPath == "" {
		result.CodebookPath = defaults.CodebookPath
	}
	if result.IDColumn == "" {
		result.IDColumn = defaults.IDColumn
	}
	if result.WeightColumn == "" {
		result.WeightColumn = defaults.WeightColumn
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Tolerance == 0 {
		result.Tolerance = defaults.Tolerance
	}

	return result
}
