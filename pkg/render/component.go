package render

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/map-framework/addon-mode-site/pkg/page"
)

// Component adapts a rendered page to templ so HTTP handlers can pass it to Context.Render.
func Component(r Renderer, tmpl page.Template, view *View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.Render(ctx, w, tmpl, view)
	})
}

// FailurePage renders a minimal error page for status code.
func FailurePage(code int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		text := templ.EscapeString(http.StatusText(code))
		_, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html><head><title>%d %s</title></head><body><h1>%d %s</h1></body></html>",
			code, text, code, text)
		return err
	})
}
