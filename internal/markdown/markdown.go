// Package markdown converts Markdown bodies (frontmatter already removed)
// into HTML fragments using Goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown to HTML. A Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter constructs a Converter. Hard wraps are enabled so single
// newlines become <br> tags, and raw HTML in the source passes through
// unescaped (page content is authored, not user-submitted).
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
	}
}

// Convert renders body to an HTML fragment.
func (c *Converter) Convert(body string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
