// Package site orchestrates the build pipeline: it resets the output tree,
// collects the blog post index, converts Markdown sources to routed HTML
// pages, copies static assets and compiles stylesheets.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitegen/internal/assets"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
	"git.home.luguber.info/inful/sitegen/internal/htmledit"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/posts"
	"git.home.luguber.info/inful/sitegen/internal/templates"
)

// markdownExt selects which input files are converted.
const markdownExt = ".md"

// Generator runs site builds for one configuration. Safe to reuse across
// builds (watch mode rebuilds through the same Generator).
type Generator struct {
	cfg      *config.Config
	conv     *markdown.Converter
	engine   *templates.Engine
	recorder metrics.Recorder
}

// NewGenerator constructs a Generator for cfg.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		conv:     markdown.NewConverter(),
		engine:   templates.NewEngine(cfg.IO.TemplatesDir),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder swaps in a metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	g.recorder = r
	return g
}

// Build runs the full pipeline once. Stylesheet compilation failures are
// recorded as warnings on the report; every other stage failure aborts the
// remaining pipeline. On success the total duration is printed to stdout.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	// Templates may have changed on disk since the previous build through
	// this Generator (watch mode), so the parsed-template cache starts cold.
	g.engine.Reset()

	bs := &buildState{
		gen: g,
		report: &BuildReport{
			BuildID:        uuid.NewString(),
			StageDurations: make(map[StageName]time.Duration),
		},
		start: time.Now(),
	}

	slog.Info("Starting site build",
		"build_id", bs.report.BuildID,
		"input", g.cfg.IO.InputDir,
		"output", g.cfg.IO.OutputDir)

	stages := []stageDef{
		{StageResetOutput, stageResetOutput},
		{StageCollectPosts, stageCollectPosts},
		{StageConvertPages, stageConvertPages},
		{StageConvertPosts, stageConvertPosts},
		{StageCopyJS, stageCopyJS},
		{StageCopyImg, stageCopyImg},
		{StageCompileCSS, stageCompileStylesheets},
	}

	err := runStages(ctx, bs, stages)
	bs.report.Duration = time.Since(bs.start)
	g.recorder.ObserveBuildDuration(bs.report.Duration)

	if err != nil {
		g.recorder.IncBuildOutcome("failure")
		return bs.report, err
	}

	g.recorder.IncBuildOutcome("success")
	slog.Debug("Build report",
		"build_id", bs.report.BuildID,
		"warnings", len(bs.report.Warnings),
		"duration", bs.report.Duration)
	fmt.Printf("Finished site build in %.3f second(s)\n", bs.report.Duration.Seconds())
	return bs.report, nil
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. Warning-kind stage errors are logged and recorded on
// the report; the pipeline continues.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return newCanceledStageError(st.name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[st.name] = dur
		bs.gen.recorder.ObserveStageDuration(string(st.name), dur)

		if err == nil {
			bs.gen.recorder.IncStageResult(string(st.name), "success")
			slog.Debug("Stage completed", "stage", st.name, "duration", dur)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.name, err)
		}
		bs.gen.recorder.IncStageResult(string(st.name), string(se.Kind))

		switch se.Kind {
		case StageErrorWarning:
			bs.report.Warnings = append(bs.report.Warnings, se)
			slog.Warn("Stage completed with warning", "stage", st.name, "error", se.Err)
		default:
			return se
		}
	}
	return nil
}

func stageResetOutput(_ context.Context, bs *buildState) error {
	out := bs.gen.cfg.IO.OutputDir
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("remove output dir %s: %w", out, err)
	}
	if err := os.MkdirAll(filepath.Join(out, "html", "blog"), 0o755); err != nil {
		return fmt.Errorf("create output tree %s: %w", out, err)
	}
	return nil
}

func stageCollectPosts(_ context.Context, bs *buildState) error {
	fragment, err := posts.Collect(filepath.Join(bs.gen.cfg.IO.InputDir, "blog"))
	if err != nil {
		return err
	}
	bs.postIndex = fragment
	return nil
}

func stageConvertPages(ctx context.Context, bs *buildState) error {
	return bs.gen.convertDir(ctx, bs, bs.gen.cfg.IO.InputDir)
}

func stageConvertPosts(ctx context.Context, bs *buildState) error {
	return bs.gen.convertDir(ctx, bs, filepath.Join(bs.gen.cfg.IO.InputDir, "blog"))
}

func stageCopyJS(_ context.Context, bs *buildState) error {
	return assets.CopyStatic(bs.gen.cfg.IO.StaticDir, bs.gen.cfg.IO.OutputDir, "js")
}

func stageCopyImg(_ context.Context, bs *buildState) error {
	return assets.CopyStatic(bs.gen.cfg.IO.StaticDir, bs.gen.cfg.IO.OutputDir, "img")
}

func stageCompileStylesheets(_ context.Context, bs *buildState) error {
	cfg := bs.gen.cfg

	compiler, err := assets.NewCompiler()
	if err != nil {
		return newWarnStageError(StageCompileCSS, err)
	}
	defer func() {
		if err := compiler.Close(); err != nil {
			slog.Warn("Failed to close sass transpiler", "error", err)
		}
	}()

	err = compiler.CompileDir(
		filepath.Join(cfg.IO.StaticDir, "scss"),
		filepath.Join(cfg.IO.OutputDir, "css"),
		cfg.ResolvedCSSStyle(),
	)
	if err != nil {
		return newWarnStageError(StageCompileCSS, err)
	}
	return nil
}

// convertDir converts every Markdown file directly inside dir. Documents are
// independent, so conversion fans out over a bounded worker pool; the post
// index fragment was computed before any worker starts and is read-only
// here.
func (g *Generator) convertDir(ctx context.Context, bs *buildState, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list input dir %s: %w", dir, err)
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.cfg.Build.Concurrency)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		name := entry.Name()
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.convertFile(dir, name, bs.postIndex)
		})
	}
	return grp.Wait()
}

// convertFile runs one document through parse → convert → render → inject →
// route → write.
func (g *Generator) convertFile(dir, name, postIndex string) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	meta, body := frontmatter.Parse(string(raw))

	html, err := g.conv.Convert(body)
	if err != nil {
		return fmt.Errorf("convert %s: %w", name, err)
	}

	rendered, err := g.engine.Render(meta, html)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	final := htmledit.Inject(rendered,
		g.cfg.Settings.PostListTarget, postIndex,
		g.cfg.Settings.Debug, g.cfg.Settings.ClientSideRouting)

	dst := filepath.Join(RouteDir(meta, g.cfg.IO.OutputDir), strings.TrimSuffix(name, markdownExt)+".html")
	if err := os.WriteFile(dst, []byte(final), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	slog.Debug("Converted document", "source", name, "output", dst)
	return nil
}
