// Package posts builds the blog post index fragment injected into rendered
// pages.
package posts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Collect scans blogDir and returns one concatenated HTML fragment linking
// to every entry's future rendered location. Every directory entry counts as
// a post; the logical name is the filename up to its first dot. Entries are
// emitted in directory-listing order (sorted by filename).
func Collect(blogDir string) (string, error) {
	entries, err := os.ReadDir(blogDir)
	if err != nil {
		return "", fmt.Errorf("list blog directory: %w", err)
	}

	var b strings.Builder
	for _, entry := range entries {
		name, _, _ := strings.Cut(entry.Name(), ".")
		b.WriteString(Link(name))
	}
	return b.String(), nil
}

// Link renders the hyperlink fragment for a single post. The link text is
// the logical name with hyphens replaced by spaces and each word title-cased.
func Link(name string) string {
	title := cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
	return fmt.Sprintf("<a href='/html/blog/%s.html' class='post-link'>%s</a>", name, title)
}
