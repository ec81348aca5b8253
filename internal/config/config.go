// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Document  string `json:"document,omitempty"`   // Path to the document text file to analyze
	UploadDir string `json:"upload_dir,omitempty"` // Directory where uploaded documents are stored
	OutputDir string `json:"output_dir,omitempty"` // Directory where analysis artifacts are written

	// Analysis
	DocumentType string `json:"document_type,omitempty"` // Override the detected document type
	TopK         int    `json:"top_k,omitempty"`         // Knowledge results per query
	MaxIssues    int    `json:"max_issues,omitempty"`    // Maximum issues sent for clause suggestions

	// Behavior
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	EmbeddingModel string `json:"embedding_model,omitempty"` // Gemini embedding model name
	UseBrowser     bool   `json:"use_browser,omitempty"`     // Use headless browser for script-heavy portals
	Verbose        bool   `json:"verbose,omitempty"`         // Print detailed debug information
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	ServerAddr     string `json:"server_addr,omitempty"`     // Listen address for the serve command
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.MaxIssues < 0 {
		return fmt.Errorf("config error: 'max_issues' must be non-negative")
	}

	if c.DocumentType != "" && !validDocumentTypes[c.DocumentType] {
		return fmt.Errorf("config error: unknown 'document_type': %s", c.DocumentType)
	}

	// Validate file paths exist (if specified)
	if c.Document != "" {
		if _, err := os.Stat(c.Document); os.IsNotExist(err) {
			return fmt.Errorf("config error: document file not found: %s", c.Document)
		}
	}

	return nil
}

var validDocumentTypes = map[string]bool{
	"memorandum":          true,
	"articles":            true,
	"application":         true,
	"board_resolution":    true,
	"employment_contract": true,
	"unknown":             true,
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Document == "" {
		result.Document = defaults.Document
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DocumentType == "" {
		result.DocumentType = defaults.DocumentType
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}

	// Int fields: use default if zero
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.MaxIssues == 0 {
		result.MaxIssues = defaults.MaxIssues
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
