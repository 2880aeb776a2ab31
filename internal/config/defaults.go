package config

import "os"

const defaultConcurrency = 4

func applyDefaults(cfg *Config) {
	if cfg.IO.InputDir == "" {
		cfg.IO.InputDir = "input"
	}
	if cfg.IO.OutputDir == "" {
		cfg.IO.OutputDir = "dist"
	}
	if cfg.IO.StaticDir == "" {
		cfg.IO.StaticDir = "static"
	}
	if cfg.IO.TemplatesDir == "" {
		cfg.IO.TemplatesDir = "templates"
	}
	if cfg.Settings.CSSOutputStyle == "" {
		cfg.Settings.CSSOutputStyle = CSSStyleCompressed
	}
	if cfg.Settings.PostListTarget == "" {
		cfg.Settings.PostListTarget = "<div id='post-list'>"
	}
	if cfg.Build.Concurrency == 0 {
		cfg.Build.Concurrency = defaultConcurrency
	}
}

// applyEnvOverrides lets the environment override selected settings without
// editing the config file. Useful for CI builds and local debug runs.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SITEGEN_INPUT_DIR"); v != "" {
		cfg.IO.InputDir = v
	}
	if v := os.Getenv("SITEGEN_OUTPUT_DIR"); v != "" {
		cfg.IO.OutputDir = v
	}
	if v := os.Getenv("SITEGEN_STATIC_DIR"); v != "" {
		cfg.IO.StaticDir = v
	}
	if v := os.Getenv("SITEGEN_TEMPLATES_DIR"); v != "" {
		cfg.IO.TemplatesDir = v
	}
	if v := os.Getenv("SITEGEN_CSS_OUTPUT_STYLE"); v != "" {
		cfg.Settings.CSSOutputStyle = v
	}
	if v := os.Getenv("SITEGEN_DEBUG"); v != "" {
		cfg.Settings.Debug = v == "true" || v == "1"
	}
}
