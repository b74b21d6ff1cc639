package page

import (
	"context"

	"github.com/map-framework/addon-mode-site/pkg/form"
)

// Request identifies what the visitor asked for.
type Request struct {
	Mode   string
	Area   string
	Page   string
	Inputs []string
}

// Page is a site page with a form.
// Implementations embed *Base, which provides the form state and the
// response document.
type Page interface {
	// Authorize reports whether the visitor may see the page.
	Authorize(ctx context.Context) bool

	// View prepares the response for a page view without a fresh submission.
	View(ctx context.Context) error

	// Check runs the business check on a bound submission.
	Check(ctx context.Context) (form.Outcome, error)

	// Fields declares the body fields the page binds, in order.
	Fields() []*form.Field

	// PageBase returns the embedded base.
	PageBase() *Base
}

// Fields returns the declarations bound for p: the form id first, then the
// page's own fields.
func Fields(p Page) []*form.Field {
	own := p.Fields()
	out := make([]*form.Field, 0, len(own)+1)
	out = append(out, form.IDFieldFor(&p.PageBase().FormID))
	return append(out, own...)
}
