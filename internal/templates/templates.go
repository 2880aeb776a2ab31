// Package templates renders converted page bodies through named HTML
// templates resolved from a templates directory.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

const (
	// SelectionKey is the metadata key naming the template for a document.
	SelectionKey = "template"
	// DefaultTemplate is used when a document names no template.
	DefaultTemplate = "default.html"
)

// ResolutionError indicates the named template could not be loaded. It is
// unrecoverable for the affected document and aborts the build.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("template %q could not be resolved: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Engine resolves templates by file name from a directory and renders pages
// with them. Parsed templates are cached; an Engine is safe for concurrent
// use.
type Engine struct {
	dir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEngine constructs an Engine reading templates from dir.
func NewEngine(dir string) *Engine {
	return &Engine{dir: dir, cache: make(map[string]*template.Template)}
}

// Reset drops all cached templates so the next lookup re-reads them from
// disk. Called at the start of every build; without it a long-lived Engine
// (watch mode rebuilds) would keep rendering templates as they were when
// first parsed.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*template.Template)
}

// Render renders htmlBody through the template selected by the document's
// metadata (key "template", falling back to default.html).
//
// The template data carries the body under "content" plus every metadata
// entry under its own key, copied in insertion order after "content". A
// metadata entry named "content" therefore shadows the body.
func (e *Engine) Render(meta *frontmatter.Metadata, htmlBody string) (string, error) {
	name := meta.GetDefault(SelectionKey, DefaultTemplate)

	tpl, err := e.lookup(name)
	if err != nil {
		return "", &ResolutionError{Name: name, Err: err}
	}

	data := make(map[string]any, meta.Len()+1)
	data["content"] = template.HTML(htmlBody)
	for _, key := range meta.Keys() {
		value, _ := meta.Get(key)
		data[key] = value
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := template.ParseFiles(filepath.Join(e.dir, name))
	if err != nil {
		return nil, err
	}
	e.cache[name] = tpl
	return tpl, nil
}
