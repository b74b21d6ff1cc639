package sitemode

import (
	"context"
	"log/slog"

	"github.com/map-framework/addon-mode-site/pkg/document"
	"github.com/map-framework/addon-mode-site/pkg/form"
	"github.com/map-framework/addon-mode-site/pkg/formstate"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

func (e *Engine) assemble(ctx context.Context, p page.Page, status form.Status, req *page.Request, sess formstate.Values) (*document.Document, error) {
	base := p.PageBase()
	if id, ok := base.FormData(form.IDField); !ok || id == "" {
		base.SetFormData(form.IDField, form.NewID())
	}

	doc := base.Response()
	root := doc.Root()

	formNode := root.Child(page.FormNode)
	if formNode == nil {
		formNode = root.AddChild(document.NewNode(page.FormNode))
	}
	formNode.SetAttr("status", status.String())

	root.AddChild(requestNode(req))

	if len(e.cfg.SessionIntoResponse) > 0 && sess != nil {
		sn := root.AddChild(document.NewNode("session"))
		for _, group := range e.cfg.SessionIntoResponse {
			v, ok := sess.GetValue(group)
			if !ok {
				continue
			}
			sn.AddChild(document.NewNode(group)).Fill(v)
		}
	}

	if e.cfg.DebugResponseFile {
		e.dump(ctx, doc)
	}

	return doc, nil
}

func requestNode(req *page.Request) *document.Node {
	n := document.NewNode("request")
	n.AddChild(document.NewNode("mode")).SetText(req.Mode)
	n.AddChild(document.NewNode("area")).SetText(req.Area)
	n.AddChild(document.NewNode("page")).SetText(req.Page)

	inputs := n.AddChild(document.NewNode("inputs"))
	for _, in := range req.Inputs {
		inputs.AddChild(document.NewNode("input")).SetText(in)
	}
	return n
}

func (e *Engine) dump(ctx context.Context, doc *document.Document) {
	data, err := doc.XML()
	if err != nil {
		e.logger.WarnContext(ctx, "site response not serialized", slog.String("error", err.Error()))
		return
	}
	if err := e.debug.WriteResponse(ctx, data); err != nil {
		e.logger.WarnContext(ctx, "site response not written to debug sink", slog.String("error", err.Error()))
	}
}
