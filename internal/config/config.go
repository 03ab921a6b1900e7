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
// All fields are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	// File is the MQXLIFF document to process.
	File string `json:"file,omitempty" validate:"omitempty,file"`

	// Categories limits processing to the named QA categories. Empty means
	// all registered categories. Names are checked against the detector
	// registry by the command, not here, so new categories need no config
	// change.
	Categories []string `json:"categories,omitempty"`

	// Behavior
	Auto            bool `json:"auto,omitempty"`             // Resolve without operator prompts
	Debug           bool `json:"debug,omitempty"`            // Verbose logging, disables short-circuits
	IgnoreRemaining bool `json:"ignore_remaining,omitempty"` // Bulk-ignore uncategorized warnings after processing

	// Oracle
	Model  string `json:"model,omitempty"`   // Oracle model id
	APIKey string `json:"api_key,omitempty"` // Gemini API key

	// Output
	ReportDir string `json:"report_dir,omitempty"` // Directory for run reports
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

// Validate checks that the configuration has valid values. Required-field
// checks happen after CLI flag merging, not here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			if first.Tag() == "file" {
				return fmt.Errorf("config error: file not found: %v", first.Value())
			}
			return fmt.Errorf("config error: invalid value for %q", first.Field())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.File == "" {
		result.File = defaults.File
	}
	if len(result.Categories) == 0 {
		result.Categories = defaults.Categories
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ReportDir == "" {
		result.ReportDir = defaults.ReportDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
