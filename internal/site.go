package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/map-framework/addon-mode-site/pkg/formstate"
	"github.com/map-framework/addon-mode-site/pkg/page"
	"github.com/map-framework/addon-mode-site/pkg/render"
	"github.com/map-framework/addon-mode-site/pkg/session"
	"github.com/map-framework/addon-mode-site/pkg/sitemode"
)

// SiteHandler serves site pages at /{area}/{page}, with any further path
// segments passed to the page as inputs.
type SiteHandler struct {
	engine   *sitemode.Engine
	renderer render.Renderer
	prefix   string
	xmlView  bool
}

// SiteOption configures a SiteHandler.
type SiteOption func(*SiteHandler)

// WithSitePrefix mounts the site pages under prefix.
func WithSitePrefix(prefix string) SiteOption {
	return func(h *SiteHandler) {
		h.prefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithXMLView answers ?xml=true with the raw response document.
func WithXMLView(enabled bool) SiteOption {
	return func(h *SiteHandler) {
		h.xmlView = enabled
	}
}

// NewSiteHandler returns a handler serving engine's pages through renderer.
func NewSiteHandler(engine *sitemode.Engine, renderer render.Renderer, opts ...SiteOption) *SiteHandler {
	h := &SiteHandler{engine: engine, renderer: renderer}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements Handler.
func (h *SiteHandler) Routes(r Router) {
	if h.prefix == "" {
		h.routes(r)
		return
	}
	r.Route(h.prefix, h.routes)
}

func (h *SiteHandler) routes(r Router) {
	for _, pattern := range []string{"/{area}/{page}", "/{area}/{page}/*"} {
		r.GET(pattern, h.serve)
		r.POST(pattern, h.serve)
	}
}

func (h *SiteHandler) serve(c Context) error {
	req := &page.Request{
		Mode:   h.engine.Config().Mode,
		Area:   c.Param("area"),
		Page:   c.Param("page"),
		Inputs: splitInputs(c.Param("*")),
	}

	body, err := c.PostForm()
	if err != nil {
		return ErrBadRequest("malformed form body", WithError(err))
	}

	values, err := h.sessionValues(c)
	if err != nil {
		return ErrInternal("", WithError(err))
	}

	res, err := h.engine.Handle(c, req, body, values)
	switch {
	case errors.Is(err, page.ErrNotFound):
		c.LogDebug("site page not found",
			slog.String("area", req.Area),
			slog.String("page", req.Page),
			slog.Any("error", err),
		)
		return ErrNotFound("", WithError(err))
	case errors.Is(err, sitemode.ErrForbidden):
		return ErrForbidden("", WithError(err))
	case err != nil:
		return ErrInternal("", WithError(err))
	}

	view := render.NewView(res.Status, res.Document)
	if h.xmlView && Query[bool](c, "xml") {
		c.SetHeader("Content-Type", "application/xml; charset=utf-8")
		return c.Render(http.StatusOK, render.Component(render.XMLRenderer{}, res.Template, view))
	}
	return c.Render(http.StatusOK, render.Component(h.renderer, res.Template, view))
}

// FailurePageErrorHandler answers errors with a minimal HTML page carrying
// the status code. Server errors are logged with their cause.
func FailurePageErrorHandler(c Context, err error) error {
	code := StatusOf(err)
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Any("error", err))
	} else {
		c.LogInfo("request refused", slog.Int("status", code), slog.Any("error", err))
	}
	return c.Render(code, render.FailurePage(code))
}

// sessionValues returns the session the form records live in, starting one
// when the visitor has none. Without a session manager the records only
// live for the current request.
func (h *SiteHandler) sessionValues(c Context) (formstate.Values, error) {
	sess, err := c.Session()
	if errors.Is(err, session.ErrNotConfigured) {
		return requestValues{}, nil
	}
	if err != nil {
		c.LogWarn("session unavailable, starting a new one", slog.Any("error", err))
	}
	if sess != nil {
		return sess, nil
	}

	if err := c.InitSession(); err != nil {
		return nil, err
	}
	return c.Session()
}

// requestValues holds form records for a single request.
type requestValues map[string]any

func (v requestValues) GetValue(key string) (any, bool) {
	val, ok := v[key]
	return val, ok
}

func (v requestValues) SetValue(key string, val any) {
	v[key] = val
}

func splitInputs(rest string) []string {
	var inputs []string
	for part := range strings.SplitSeq(rest, "/") {
		if part != "" {
			inputs = append(inputs, part)
		}
	}
	return inputs
}
