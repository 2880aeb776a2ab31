package site

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

func metaWithTemplate(t *testing.T, name string) *frontmatter.Metadata {
	t.Helper()
	meta := frontmatter.NewMetadata()
	meta.Set("template", name)
	return meta
}

func TestRouteDir_PostTemplateGoesToBlogSubdir(t *testing.T) {
	dir := RouteDir(metaWithTemplate(t, "post.html"), "dist")
	require.Equal(t, filepath.Join("dist", "html", "blog"), dir)
}

func TestRouteDir_CustomTemplateGoesToHTMLSubdir(t *testing.T) {
	dir := RouteDir(metaWithTemplate(t, "custom.html"), "dist")
	require.Equal(t, filepath.Join("dist", "html"), dir)
}

func TestRouteDir_NoTemplateGoesToOutputRoot(t *testing.T) {
	dir := RouteDir(frontmatter.NewMetadata(), "dist")
	require.Equal(t, "dist", dir)
}

func TestRouteDir_ExplicitDefaultTemplateGoesToOutputRoot(t *testing.T) {
	dir := RouteDir(metaWithTemplate(t, "default.html"), "dist")
	require.Equal(t, "dist", dir)
}

func TestRouteDir_IsPureFunctionOfMetadata(t *testing.T) {
	meta := metaWithTemplate(t, "post.html")
	first := RouteDir(meta, "dist")
	second := RouteDir(meta, "dist")
	require.Equal(t, first, second)
}
