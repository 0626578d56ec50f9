// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables consulted by FromEnv
const (
	EnvOutputDir = "RESUMEGEN_OUTPUT_DIR"
	EnvBoldWords = "RESUMEGEN_BOLD_WORDS"
	EnvStyle     = "RESUMEGEN_STYLE"
	EnvPort      = "RESUMEGEN_PORT"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	OutputDir    string `json:"output_dir,omitempty"`    // Base directory for generated documents
	BoldWords    string `json:"bold_words,omitempty"`    // Always-bold keyword file
	KeywordsFile string `json:"keywords_file,omitempty"` // Per-run keyword file

	// Rendering
	Style       string   `json:"style,omitempty"`        // Named style, or "all"
	Font        string   `json:"font,omitempty"`         // Font family override
	FontSize    float64  `json:"font_size,omitempty"`    // Base font size override in points
	Format      string   `json:"format,omitempty"`       // Record format: auto, standard or dotnet
	Keywords    []string `json:"keywords,omitempty"`     // Keywords to bold in addition to the keyword file
	NoHighlight bool     `json:"no_highlight,omitempty"` // Disable keyword bolding

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
	Port    int  `json:"port,omitempty"`    // HTTP port for serve
}

// Defaults returns the built-in defaults
func Defaults() Config {
	return Config{
		OutputDir: "generated_resumes",
		BoldWords: "bold_words.json",
		Style:     "style_5",
		Format:    "auto",
		Port:      8080,
	}
}

// FromEnv reads the subset of settings that can come from the environment.
// Unset variables leave fields empty.
func FromEnv() Config {
	cfg := Config{
		OutputDir: strings.TrimSpace(os.Getenv(EnvOutputDir)),
		BoldWords: strings.TrimSpace(os.Getenv(EnvBoldWords)),
		Style:     strings.TrimSpace(os.Getenv(EnvStyle)),
	}
	if port, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvPort))); err == nil {
		cfg.Port = port
	}
	return cfg
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
// Note: Style names are checked by the renderer, which owns them.
func (c *Config) Validate() error {
	if c.FontSize < 0 || c.FontSize > 72 {
		return fmt.Errorf("config error: 'font_size' must be between 0 and 72")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch strings.ToLower(c.Format) {
	case "", "auto", "standard", "dotnet":
	default:
		return fmt.Errorf("config error: 'format' must be auto, standard or dotnet, got %q", c.Format)
	}

	if c.KeywordsFile != "" {
		if _, err := os.Stat(c.KeywordsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: keywords file not found: %s", c.KeywordsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layering file over environment over built-ins is done by chaining calls.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.BoldWords == "" {
		result.BoldWords = defaults.BoldWords
	}
	if result.KeywordsFile == "" {
		result.KeywordsFile = defaults.KeywordsFile
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Font == "" {
		result.Font = defaults.Font
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	// Numeric fields: use default if zero
	if result.FontSize == 0 {
		result.FontSize = defaults.FontSize
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.Keywords) == 0 && len(defaults.Keywords) > 0 {
		result.Keywords = append([]string(nil), defaults.Keywords...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Resolve layers a config file (may be nil) over the environment and the
// built-in defaults.
func Resolve(file *Config) Config {
	env := FromEnv()
	base := env.MergeWithDefaults(Defaults())
	if file == nil {
		return base
	}
	return file.MergeWithDefaults(base)
}
