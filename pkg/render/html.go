package render

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/map-framework/addon-mode-site/pkg/cache"
	"github.com/map-framework/addon-mode-site/pkg/logger"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

// Renderer writes a page for an assembled view.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, tmpl page.Template, view *View) error
}

// HTMLRenderer executes html/template page templates.
// Parsed templates are cached by path, so one renderer serves one template filesystem.
type HTMLRenderer struct {
	templates *cache.Loader[*template.Template]
	funcs     template.FuncMap
	partials  []string
	ttl       time.Duration
	logger    *slog.Logger
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithPartials parses the given glob patterns next to every page template,
// so pages can call shared layouts with {{template "name" .}}.
func WithPartials(patterns ...string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.partials = append(r.partials, patterns...)
	}
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) HTMLOption {
	return func(r *HTMLRenderer) {
		for name, fn := range funcs {
			r.funcs[name] = fn
		}
	}
}

// WithCacheTTL bounds how long a parsed template is reused. Zero caches forever.
func WithCacheTTL(d time.Duration) HTMLOption {
	return func(r *HTMLRenderer) {
		r.ttl = d
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) HTMLOption {
	return func(r *HTMLRenderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewHTML returns a renderer with the title and sanitize helpers installed.
func NewHTML(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{
		templates: cache.NewLoader[*template.Template](cache.NewMemory[*template.Template](cache.WithSweepInterval(0))),
		funcs:     defaultFuncs(),
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultFuncs() template.FuncMap {
	ugc := bluemonday.UGCPolicy()
	title := cases.Title(language.Und)

	return template.FuncMap{
		"title": func(s string) string {
			return title.String(s)
		},
		"sanitize": func(s string) template.HTML {
			return template.HTML(ugc.Sanitize(s)) //nolint:gosec // sanitized by bluemonday
		},
	}
}

// Render executes the page template with view as data.
func (r *HTMLRenderer) Render(ctx context.Context, w io.Writer, tmpl page.Template, view *View) error {
	t, err := r.templates.Get(ctx, tmpl.Path, func(context.Context) (*template.Template, time.Duration, error) {
		t, err := r.parse(tmpl)
		return t, r.ttl, err
	})
	if err != nil {
		return err
	}

	if err := t.Execute(w, view); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateExec, tmpl.Path, err)
	}
	return nil
}

func (r *HTMLRenderer) parse(tmpl page.Template) (*template.Template, error) {
	t := template.New(path.Base(tmpl.Path)).Funcs(r.funcs)

	t, err := t.ParseFS(tmpl.FS, tmpl.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, tmpl.Path, err)
	}
	for _, pattern := range r.partials {
		if t, err = t.ParseFS(tmpl.FS, pattern); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, pattern, err)
		}
	}

	r.logger.Debug("template parsed", slog.String("path", tmpl.Path))
	return t, nil
}

// Reset drops every parsed template.
func (r *HTMLRenderer) Reset(ctx context.Context) error {
	return r.templates.Cache().Clear(ctx)
}

// Close releases the template cache.
func (r *HTMLRenderer) Close() error {
	return r.templates.Cache().Close()
}
