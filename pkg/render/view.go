package render

import (
	"github.com/map-framework/addon-mode-site/pkg/document"
	"github.com/map-framework/addon-mode-site/pkg/form"
)

// View is the data handed to a page template.
type View struct {
	Status   form.Status
	Document *document.Document
}

// NewView wraps an assembled response document.
func NewView(status form.Status, doc *document.Document) *View {
	if doc == nil {
		doc = document.New()
	}
	return &View{Status: status, Document: doc}
}

// Form returns the form node, or an empty node when the page has none.
func (v *View) Form() *document.Node {
	return v.child("form")
}

// Request returns the request echo node.
func (v *View) Request() *document.Node {
	return v.child("request")
}

// Session returns the session snapshot node.
func (v *View) Session() *document.Node {
	return v.child("session")
}

// Value returns the form value for name.
func (v *View) Value(name string) string {
	return v.Form().ChildText(name)
}

// FormID returns the form id to embed as a hidden field.
func (v *View) FormID() string {
	return v.Value(form.IDField)
}

// Reason returns the rejection or acceptance reason.
func (v *View) Reason() string {
	return v.Form().Attr("reason")
}

// Reference returns the field or item a rejection refers to.
func (v *View) Reference() string {
	return v.Form().Attr("reference")
}

// Rejected reports whether the submission was rejected.
func (v *View) Rejected() bool {
	return v.Status == form.StatusRejected
}

// Accepted reports whether the submission was accepted.
func (v *View) Accepted() bool {
	return v.Status == form.StatusAccepted
}

func (v *View) child(name string) *document.Node {
	if c := v.Document.Root().Child(name); c != nil {
		return c
	}
	return document.NewNode(name)
}
