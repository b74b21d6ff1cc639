package page

import (
	"github.com/map-framework/addon-mode-site/pkg/document"
	"github.com/map-framework/addon-mode-site/pkg/form"
)

// FormNode is the name of the form element in the response document.
const FormNode = "form"

// Base carries the state every page shares. Embed *Base in page types.
type Base struct {
	// FormID is bound from the submitted form id field.
	FormID string

	request  *Request
	response *document.Document
	form     *document.Node
}

// NewBase returns an initialised base for req.
func NewBase(req *Request) *Base {
	b := &Base{}
	b.init(req)
	return b
}

func (b *Base) init(req *Request) {
	if req == nil {
		req = &Request{}
	}
	b.request = req
	b.response = document.New()
	b.form = b.response.Root().AddChild(document.NewNode(FormNode))
}

// PageBase implements Page.
func (b *Base) PageBase() *Base {
	return b
}

// Initialized reports whether the base has a response document.
func (b *Base) Initialized() bool {
	return b != nil && b.response != nil
}

// Request returns the request the page was built for.
func (b *Base) Request() *Request {
	return b.request
}

// Document returns the live response document for the page to fill.
func (b *Base) Document() *document.Document {
	return b.response
}

// SetFormData sets the value of a form element, replacing an existing one.
func (b *Base) SetFormData(name, value string) *Base {
	if n := b.form.Child(name); n != nil {
		n.SetText(value)
		return b
	}
	b.form.AddChild(document.NewNode(name)).SetText(value)
	return b
}

// FormData returns the value of a form element and whether it exists.
func (b *Base) FormData(name string) (string, bool) {
	n := b.form.Child(name)
	if n == nil {
		return "", false
	}
	return n.Text(), true
}

// Reject records a rejection on the form element.
func (b *Base) Reject(reason, reference string) {
	b.form.SetAttr("reason", reason)
	if reference != "" {
		b.form.SetAttr("reference", reference)
	}
}

// Accept records an acceptance on the form element.
func (b *Base) Accept(reason string) {
	if reason != "" {
		b.form.SetAttr("reason", reason)
	}
}

// Apply records o on the form element.
func (b *Base) Apply(o form.Outcome) {
	if o.Accepted() {
		b.Accept(o.Reason)
		return
	}
	b.Reject(o.Reason, o.Reference)
}

// Response returns a copy of the response document.
// Later changes by the page do not affect the copy.
func (b *Base) Response() *document.Document {
	return b.response.Clone()
}
