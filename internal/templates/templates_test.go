package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRender_DefaultTemplateWhenMetadataNamesNone(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.html", "<main>{{.content}}</main>")

	engine := NewEngine(dir)
	out, err := engine.Render(frontmatter.NewMetadata(), "<p>hi</p>")
	require.NoError(t, err)
	require.Equal(t, "<main><p>hi</p></main>", out)
}

func TestRender_SelectsTemplateFromMetadata(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "post.html", "<article>{{.content}}</article>")

	meta := frontmatter.NewMetadata()
	meta.Set("template", "post.html")

	engine := NewEngine(dir)
	out, err := engine.Render(meta, "<p>post</p>")
	require.NoError(t, err)
	require.Equal(t, "<article><p>post</p></article>", out)
}

func TestRender_MetadataKeysAreBoundAsVariables(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.html", "<h1>{{.title}}</h1>{{.content}}")

	meta := frontmatter.NewMetadata()
	meta.Set("title", "Hello")

	engine := NewEngine(dir)
	out, err := engine.Render(meta, "<p>body</p>")
	require.NoError(t, err)
	require.Equal(t, "<h1>Hello</h1><p>body</p>", out)
}

func TestRender_MetadataContentKeyShadowsBody(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.html", "{{.content}}")

	meta := frontmatter.NewMetadata()
	meta.Set("content", "override")

	engine := NewEngine(dir)
	out, err := engine.Render(meta, "<p>body</p>")
	require.NoError(t, err)
	require.Equal(t, "override", out)
}

func TestRender_MissingTemplate_ReturnsResolutionError(t *testing.T) {
	engine := NewEngine(t.TempDir())

	meta := frontmatter.NewMetadata()
	meta.Set("template", "nope.html")

	_, err := engine.Render(meta, "<p>body</p>")
	require.Error(t, err)
	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	require.Equal(t, "nope.html", re.Name)
}

func TestReset_PicksUpTemplateEditsFromDisk(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.html", "old: {{.content}}")

	engine := NewEngine(dir)
	out, err := engine.Render(frontmatter.NewMetadata(), "x")
	require.NoError(t, err)
	require.Equal(t, "old: x", out)

	// An edit alone is invisible while the parsed template is cached.
	writeTemplate(t, dir, "default.html", "new: {{.content}}")
	out, err = engine.Render(frontmatter.NewMetadata(), "x")
	require.NoError(t, err)
	require.Equal(t, "old: x", out)

	engine.Reset()
	out, err = engine.Render(frontmatter.NewMetadata(), "x")
	require.NoError(t, err)
	require.Equal(t, "new: x", out)
}

func TestRender_BodyHTMLIsNotEscaped(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default.html", "{{.content}}")

	engine := NewEngine(dir)
	out, err := engine.Render(frontmatter.NewMetadata(), "<div class='x'>&amp;</div>")
	require.NoError(t, err)
	require.Equal(t, "<div class='x'>&amp;</div>", out)
}
