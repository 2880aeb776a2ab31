// Package config loads and validates the process-wide build configuration.
// Configuration is read once before a build starts and never mutated during
// it.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// CSS output styles understood by the stylesheet compiler.
const (
	CSSStyleExpanded   = "expanded"
	CSSStyleCompressed = "compressed"
)

// IOConfig holds the directory layout of a site project.
type IOConfig struct {
	InputDir     string `yaml:"input_dir"`     // Markdown sources; blog posts live in <input_dir>/blog
	OutputDir    string `yaml:"output_dir"`    // Destroyed and recreated on every build
	StaticDir    string `yaml:"static_dir"`    // js/, img/ and scss/ subdirectories
	TemplatesDir string `yaml:"templates_dir"` // Page templates resolved by file name
}

// SettingsConfig holds behavior toggles for a build.
type SettingsConfig struct {
	Debug             bool   `yaml:"debug"`
	ClientSideRouting bool   `yaml:"client_side_routing"`
	CSSOutputStyle    string `yaml:"css_output_style"`
	PostListTarget    string `yaml:"post_list_target"` // Anchor element the post index is inserted after
}

// BuildConfig holds build performance tuning knobs.
type BuildConfig struct {
	// Concurrency caps the number of documents converted in parallel.
	// Zero selects the default.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Config is the process-wide configuration, immutable for the duration of
// one build.
type Config struct {
	IO       IOConfig       `yaml:"io"`
	Settings SettingsConfig `yaml:"settings"`
	Build    BuildConfig    `yaml:"build,omitempty"`
}

// ResolvedCSSStyle returns the stylesheet output style for this build. Debug
// builds always use the expanded style; otherwise the configured style wins.
func (c *Config) ResolvedCSSStyle() string {
	if c.Settings.Debug {
		return CSSStyleExpanded
	}
	return c.Settings.CSSOutputStyle
}

// Load reads the configuration file, expands environment references, applies
// defaults and environment overrides, and validates the result.
func Load(configPath string) (*Config, error) {
	// Load .env if present so ${VAR} references and overrides can see it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{}
	applyDefaults(&example)

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
