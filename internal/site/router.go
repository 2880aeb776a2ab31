package site

import (
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// postTemplate routes a document into the blog subdirectory.
const postTemplate = "post.html"

// RouteDir maps a document's metadata to its destination directory under
// outputDir. Pure function of the metadata:
//
//  1. template == "post.html"            → <outputDir>/html/blog
//  2. any other explicitly named template → <outputDir>/html
//  3. no template, or "default.html"      → <outputDir>
func RouteDir(meta *frontmatter.Metadata, outputDir string) string {
	tpl, ok := meta.Get(templates.SelectionKey)
	switch {
	case ok && tpl == postTemplate:
		return filepath.Join(outputDir, "html", "blog")
	case ok && tpl != templates.DefaultTemplate:
		return filepath.Join(outputDir, "html")
	default:
		return outputDir
	}
}
