package config

import "fmt"

func validate(cfg *Config) error {
	dirs := map[string]string{
		"io.input_dir":     cfg.IO.InputDir,
		"io.output_dir":    cfg.IO.OutputDir,
		"io.static_dir":    cfg.IO.StaticDir,
		"io.templates_dir": cfg.IO.TemplatesDir,
	}
	for field, value := range dirs {
		if value == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}

	switch cfg.Settings.CSSOutputStyle {
	case CSSStyleExpanded, CSSStyleCompressed:
	default:
		return fmt.Errorf("settings.css_output_style must be %q or %q, got %q",
			CSSStyleExpanded, CSSStyleCompressed, cfg.Settings.CSSOutputStyle)
	}

	if cfg.Settings.PostListTarget == "" {
		return fmt.Errorf("settings.post_list_target must not be empty")
	}
	if cfg.Build.Concurrency < 1 {
		return fmt.Errorf("build.concurrency must be at least 1, got %d", cfg.Build.Concurrency)
	}
	return nil
}
