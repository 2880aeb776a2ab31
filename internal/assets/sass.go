package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bep/godartsass/v2"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Compiler compiles SCSS sources to CSS through a Dart Sass transpiler
// process.
type Compiler struct {
	transpiler *godartsass.Transpiler
}

// NewCompiler starts a Dart Sass transpiler.
func NewCompiler() (*Compiler, error) {
	transpiler, err := godartsass.Start(godartsass.Options{})
	if err != nil {
		return nil, fmt.Errorf("start sass transpiler: %w", err)
	}
	return &Compiler{transpiler: transpiler}, nil
}

// Close shuts the transpiler process down.
func (c *Compiler) Close() error {
	return c.transpiler.Close()
}

// CompileDir compiles every non-partial .scss/.sass file in inputDir into a
// .css file of the same stem in outputDir. Partials (leading underscore)
// are resolvable via includes but produce no output of their own.
func (c *Compiler) CompileDir(inputDir, outputDir, style string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("list stylesheet dir %s: %w", inputDir, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create stylesheet output dir %s: %w", outputDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		ext := filepath.Ext(name)
		if ext != ".scss" && ext != ".sass" {
			continue
		}

		source, err := os.ReadFile(filepath.Join(inputDir, name))
		if err != nil {
			return fmt.Errorf("read stylesheet %s: %w", name, err)
		}

		syntax := godartsass.SourceSyntaxSCSS
		if ext == ".sass" {
			syntax = godartsass.SourceSyntaxSASS
		}

		result, err := c.transpiler.Execute(godartsass.Args{
			Source:       string(source),
			SourceSyntax: syntax,
			OutputStyle:  outputStyle(style),
			IncludePaths: []string{inputDir},
		})
		if err != nil {
			return fmt.Errorf("compile stylesheet %s: %w", name, err)
		}

		out := filepath.Join(outputDir, strings.TrimSuffix(name, ext)+".css")
		if err := os.WriteFile(out, []byte(result.CSS), 0o644); err != nil {
			return fmt.Errorf("write stylesheet %s: %w", out, err)
		}
	}
	return nil
}

func outputStyle(style string) godartsass.OutputStyle {
	if style == config.CSSStyleCompressed {
		return godartsass.OutputStyleCompressed
	}
	return godartsass.OutputStyleExpanded
}
