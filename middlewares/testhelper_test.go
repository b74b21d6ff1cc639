package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/map-framework/addon-mode-site/internal"
)

// routeHandler serves a single GET route.
type routeHandler struct {
	path string
	fn   internal.HandlerFunc
	mw   []internal.Middleware
}

func (h routeHandler) Routes(r internal.Router) {
	r.GET(h.path, h.fn, h.mw...)
}

// newApp builds an app serving fn at "/" behind mw, logging into buf.
func newApp(buf *bytes.Buffer, fn internal.HandlerFunc, mw ...internal.Middleware) *internal.App {
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routeHandler{path: "/", fn: fn}),
	)
}

func get(app http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
