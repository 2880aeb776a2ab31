package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/htmledit"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureConfig lays out a minimal site project in a temp dir: one root page
// without metadata, one blog post, static js/img files and two templates.
// There is no scss directory, so the stylesheet stage degrades to a warning.
func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	write(t, filepath.Join(root, "input", "index.md"),
		"\n\n# Home\nWelcome home")
	write(t, filepath.Join(root, "input", "blog", "my-first-post.md"),
		"---\ntemplate: post.html\ntitle: My First Post\n---\nHello **world**")
	write(t, filepath.Join(root, "static", "js", "dev.js"), "console.log('dev')")
	write(t, filepath.Join(root, "static", "img", "logo.svg"), "<svg/>")
	write(t, filepath.Join(root, "templates", "default.html"),
		"<html><body><div id='post-list'></div>\n{{.content}}</body></html>")
	write(t, filepath.Join(root, "templates", "post.html"),
		"<html><body><h1>{{.title}}</h1><div id='post-list'></div>\n{{.content}}</body></html>")

	return &config.Config{
		IO: config.IOConfig{
			InputDir:     filepath.Join(root, "input"),
			OutputDir:    filepath.Join(root, "dist"),
			StaticDir:    filepath.Join(root, "static"),
			TemplatesDir: filepath.Join(root, "templates"),
		},
		Settings: config.SettingsConfig{
			CSSOutputStyle: config.CSSStyleCompressed,
			PostListTarget: "<div id='post-list'>",
		},
		Build: config.BuildConfig{Concurrency: 2},
	}
}

func readOutput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.IO.OutputDir, rel))
	require.NoError(t, err)
	return string(data)
}

// snapshotTree maps every file below dir to its content.
func snapshotTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestBuild_EndToEnd(t *testing.T) {
	cfg := fixtureConfig(t)
	gen := NewGenerator(cfg)

	report, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.BuildID)

	postLink := "<a href='/html/blog/my-first-post.html' class='post-link'>My First Post</a>"

	index := readOutput(t, cfg, "index.html")
	require.Contains(t, index, "<h1>Home</h1>")
	require.Contains(t, index, "<div id='post-list'>"+postLink)

	post := readOutput(t, cfg, filepath.Join("html", "blog", "my-first-post.html"))
	require.Contains(t, post, "<h1>My First Post</h1>")
	require.Contains(t, post, "<strong>world</strong>")
	require.Contains(t, post, "<div id='post-list'>"+postLink)

	require.Equal(t, "console.log('dev')", readOutput(t, cfg, filepath.Join("js", "dev.js")))
	require.Equal(t, "<svg/>", readOutput(t, cfg, filepath.Join("img", "logo.svg")))

	// No scss directory: the stylesheet stage degrades to a recorded warning.
	require.Len(t, report.Warnings, 1)
	var se *StageError
	require.True(t, errors.As(report.Warnings[0], &se))
	require.Equal(t, StageErrorWarning, se.Kind)
	require.Equal(t, StageCompileCSS, se.Stage)
}

func TestBuild_RebuildIsIdempotent(t *testing.T) {
	cfg := fixtureConfig(t)
	gen := NewGenerator(cfg)

	_, err := gen.Build(context.Background())
	require.NoError(t, err)
	first := snapshotTree(t, cfg.IO.OutputDir)

	_, err = gen.Build(context.Background())
	require.NoError(t, err)
	second := snapshotTree(t, cfg.IO.OutputDir)

	require.Equal(t, first, second)
}

func TestBuild_TemplateEditsApplyOnRebuildThroughSameGenerator(t *testing.T) {
	cfg := fixtureConfig(t)
	gen := NewGenerator(cfg)

	_, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.NotContains(t, readOutput(t, cfg, "index.html"), "EDITED")

	write(t, filepath.Join(cfg.IO.TemplatesDir, "default.html"),
		"<html><body>EDITED<div id='post-list'></div>\n{{.content}}</body></html>")

	_, err = gen.Build(context.Background())
	require.NoError(t, err)
	require.Contains(t, readOutput(t, cfg, "index.html"), "EDITED")
}

func TestBuild_DevUtilsInjectedOnlyInDebugWithoutClientSideRouting(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Settings.Debug = true

	_, err := NewGenerator(cfg).Build(context.Background())
	require.NoError(t, err)
	require.Contains(t, readOutput(t, cfg, "index.html"), htmledit.DevUtilsScript+"</body>")

	cfg.Settings.ClientSideRouting = true
	_, err = NewGenerator(cfg).Build(context.Background())
	require.NoError(t, err)
	require.NotContains(t, readOutput(t, cfg, "index.html"), htmledit.DevUtilsScript)
}

func TestBuild_MissingTemplateAbortsBuild(t *testing.T) {
	cfg := fixtureConfig(t)
	write(t, filepath.Join(cfg.IO.InputDir, "broken.md"),
		"---\ntemplate: missing.html\n---\nbody")

	_, err := NewGenerator(cfg).Build(context.Background())
	require.Error(t, err)

	var re *templates.ResolutionError
	require.True(t, errors.As(err, &re))
	require.Equal(t, "missing.html", re.Name)

	var se *StageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, StageErrorFatal, se.Kind)
}

func TestBuild_MissingInputDirectoryFailsFast(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.IO.InputDir = filepath.Join(cfg.IO.InputDir, "nope")

	_, err := NewGenerator(cfg).Build(context.Background())
	require.Error(t, err)
}

func TestBuild_CanceledContextStopsPipeline(t *testing.T) {
	cfg := fixtureConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(cfg).Build(ctx)
	require.Error(t, err)

	var se *StageError
	require.True(t, errors.As(err, &se))
	require.Equal(t, StageErrorCanceled, se.Kind)
}
