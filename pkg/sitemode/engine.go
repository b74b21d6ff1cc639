package sitemode

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/map-framework/addon-mode-site/pkg/document"
	"github.com/map-framework/addon-mode-site/pkg/form"
	"github.com/map-framework/addon-mode-site/pkg/formstate"
	"github.com/map-framework/addon-mode-site/pkg/logger"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

// Result is what the engine hands to the renderer.
type Result struct {
	Status   form.Status
	Document *document.Document
	Template page.Template
}

// Engine serves site pages and drives their forms across requests.
type Engine struct {
	registry *page.Registry
	cfg      Config
	logger   *slog.Logger
	debug    DebugSink
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the site mode configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.Mode == "" {
			cfg.Mode = DefaultMode
		}
		e.cfg = cfg
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDebugSink sets where assembled documents are written when
// DebugResponseFile is enabled. Defaults to a FileSink in the temp dir.
func WithDebugSink(s DebugSink) Option {
	return func(e *Engine) {
		if s != nil {
			e.debug = s
		}
	}
}

// New returns an engine serving the pages of reg.
func New(reg *page.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		cfg:      DefaultConfig(),
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.debug == nil {
		e.debug = NewFileSink("")
	}
	return e
}

// Registry returns the page registry.
func (e *Engine) Registry() *page.Registry {
	return e.registry
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Handle serves one request for a site page.
//
// The form records of sess are loaded before anything else and flushed
// back into sess on every return path, including panics. Callers must not
// write the response before Handle returns.
//
// Unknown pages and templates wrap page.ErrNotFound, refused visitors
// ErrForbidden. Any other error is a configuration or page failure.
func (e *Engine) Handle(ctx context.Context, req *page.Request, body url.Values, sess formstate.Values) (*Result, error) {
	forms, err := formstate.Load(sess)
	if err != nil {
		e.logger.WarnContext(ctx, "discarding unreadable form state", slog.String("error", err.Error()))
	}
	defer forms.Flush(sess)
	e.logger.DebugContext(ctx, "form state loaded", slog.Int("records", forms.Len()))

	if req.Mode == "" {
		req.Mode = e.cfg.Mode
	}

	desc, err := e.registry.Resolve(ctx, req.Area, req.Page)
	if err != nil {
		return nil, err
	}

	p, err := desc.New(req)
	if err != nil {
		return nil, err
	}

	if err := Authorize(ctx, p); err != nil {
		e.logger.InfoContext(ctx, "site page access denied",
			slog.String("area", req.Area),
			slog.String("page", req.Page),
		)
		return nil, err
	}

	status, err := e.run(ctx, req, body, forms, p)
	if err != nil {
		return nil, err
	}

	doc, err := e.assemble(ctx, p, status, req, sess)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "site page served",
		slog.String("area", req.Area),
		slog.String("page", req.Page),
		slog.String("status", status.String()),
	)

	return &Result{Status: status, Document: doc, Template: desc.Template}, nil
}
