// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Job description
	Job    string `json:"job,omitempty" yaml:"job,omitempty"`                                  // Path to job description text file
	JobURL string `json:"job_url,omitempty" yaml:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from

	// Resume sources
	ResumesDir  string   `json:"resumes_dir,omitempty" yaml:"resumes_dir,omitempty"`                // Directory of already-downloaded resumes
	URLs        []string `json:"urls,omitempty" yaml:"urls,omitempty" validate:"omitempty,dive,url"` // Resume locations to download
	DownloadDir string   `json:"download_dir,omitempty" yaml:"download_dir,omitempty"`              // Where downloads are written

	// Limits
	TopN          int   `json:"top_n,omitempty" yaml:"top_n,omitempty" validate:"gte=0,lte=100"`
	MaxYears      *int  `json:"max_years,omitempty" yaml:"max_years,omitempty" validate:"omitempty,gte=0"` // Overrides the inferred experience ceiling
	MaxConcurrent int   `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty" validate:"gte=0,lte=64"`
	MaxAttempts   int   `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"gte=0,lte=10"`
	MaxFileSize   int64 `json:"max_file_size,omitempty" yaml:"max_file_size,omitempty" validate:"gte=0"`

	// Collaborators
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key for semantic similarity
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"` // Token for the enrichment provider
	RedisAddr   string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`     // Enrichment cache; empty disables caching

	// Behavior
	UseBrowser bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Use headless browser for SPA job postings
	Verbose    bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print detailed summaries
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat  string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=text json"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.ResumesDir != "" && len(c.URLs) > 0 {
		return fmt.Errorf("config error: 'resumes_dir' and 'urls' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.ResumesDir != "" {
		if info, err := os.Stat(c.ResumesDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: resumes directory not found: %s", c.ResumesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.ResumesDir == "" {
		result.ResumesDir = defaults.ResumesDir
	}
	if result.DownloadDir == "" {
		result.DownloadDir = defaults.DownloadDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if len(result.URLs) == 0 {
		result.URLs = defaults.URLs
	}

	// Int fields: use default if zero
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.MaxConcurrent == 0 {
		result.MaxConcurrent = defaults.MaxConcurrent
	}
	if result.MaxAttempts == 0 {
		result.MaxAttempts = defaults.MaxAttempts
	}
	if result.MaxFileSize == 0 {
		result.MaxFileSize = defaults.MaxFileSize
	}
	if result.MaxYears == nil {
		result.MaxYears = defaults.MaxYears
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills collaborator settings from the environment when the config
// leaves them empty: GEMINI_API_KEY, GITHUB_TOKEN, REDIS_ADDR, LOG_LEVEL, LOG_FORMAT.
func (c *Config) ApplyEnv() {
	setIfEmpty(&c.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&c.GitHubToken, "GITHUB_TOKEN")
	setIfEmpty(&c.RedisAddr, "REDIS_ADDR")
	setIfEmpty(&c.LogLevel, "LOG_LEVEL")
	setIfEmpty(&c.LogFormat, "LOG_FORMAT")
}

func setIfEmpty(field *string, key string) {
	if *field == "" {
		*field = os.Getenv(key)
	}
}

// envInt reads a positive integer from the environment, falling back to def.
func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
