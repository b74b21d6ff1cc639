package sitemode

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"

	"github.com/map-framework/addon-mode-site/pkg/form"
	"github.com/map-framework/addon-mode-site/pkg/formstate"
	"github.com/map-framework/addon-mode-site/pkg/page"
)

// classify decides the status of a request that does not need binding.
// It reports false for a fresh submission.
func classify(forms *formstate.Store, area, name string, body url.Values) (form.Status, bool) {
	hasBody := len(body) > 0
	restored := !hasBody && forms.IsOpen(area, name)

	switch {
	case !hasBody && !restored:
		return form.StatusInit, true
	case forms.IsClosedFor(area, name, body.Get(form.IDField)):
		return form.StatusRepeated, true
	case restored:
		return form.StatusRestored, true
	}
	return "", false
}

func (e *Engine) run(ctx context.Context, req *page.Request, body url.Values, forms *formstate.Store, p page.Page) (form.Status, error) {
	status, decided := classify(forms, req.Area, req.Page, body)
	if !decided {
		return e.submit(ctx, req, body, forms, p)
	}

	if status == form.StatusRestored {
		e.restore(ctx, req, forms, p)
	}
	if err := p.View(ctx); err != nil {
		return "", fmt.Errorf("sitemode: view %s/%s: %w", req.Area, req.Page, err)
	}
	return status, nil
}

// restore replays the open record into the page's fields and form element.
func (e *Engine) restore(ctx context.Context, req *page.Request, forms *formstate.Store, p page.Page) {
	rec, ok := forms.Get(req.Area, req.Page)
	if !ok {
		return
	}

	fields := make(map[string]*form.Field)
	for _, f := range page.Fields(p) {
		if f != nil {
			fields[f.Name()] = f
		}
	}

	base := p.PageBase()
	for _, name := range slices.Sorted(maps.Keys(rec.Data)) {
		value := rec.Data[name]
		base.SetFormData(name, value)

		f, ok := fields[name]
		if !ok {
			continue
		}
		if err := f.Assign(value); err != nil {
			e.logger.DebugContext(ctx, "stored form value not replayed",
				slog.String("field", name),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (e *Engine) submit(ctx context.Context, req *page.Request, body url.Values, forms *formstate.Store, p page.Page) (form.Status, error) {
	base := p.PageBase()
	fields := page.Fields(p)

	if err := form.Bind(fields, body); err != nil {
		rej, ok := form.AsRejection(err)
		if !ok {
			return "", fmt.Errorf("sitemode: bind %s/%s: %w", req.Area, req.Page, err)
		}
		base.Reject(rej.Code, rej.Field)
		e.persist(ctx, forms, req, base, fields)
		return form.StatusRejected, nil
	}

	outcome, err := p.Check(ctx)
	if err != nil {
		return "", fmt.Errorf("sitemode: check %s/%s: %w", req.Area, req.Page, err)
	}
	base.Apply(outcome)

	if !outcome.Accepted() {
		e.persist(ctx, forms, req, base, fields)
		return form.StatusRejected, nil
	}

	if err := forms.Close(req.Area, req.Page, base.FormID); err != nil {
		return "", fmt.Errorf("sitemode: close %s/%s: %w", req.Area, req.Page, err)
	}
	return form.StatusAccepted, nil
}

// persist stores every field that carries a value as the open record and
// echoes it into the form element. A submission whose form id did not bind
// leaves a closed record in place, so the accepted form stays repeatable.
func (e *Engine) persist(ctx context.Context, forms *formstate.Store, req *page.Request, base *page.Base, fields []*form.Field) {
	data := make(map[string]string, len(fields))
	for _, f := range fields {
		v, ok := f.Value()
		if !ok {
			continue
		}
		data[f.Name()] = v
		base.SetFormData(f.Name(), v)
	}

	if _, ok := data[form.IDField]; !ok && forms.IsClosed(req.Area, req.Page) {
		e.logger.DebugContext(ctx, "closed form kept after submission without form id",
			slog.String("area", req.Area),
			slog.String("page", req.Page),
		)
		return
	}
	forms.Set(req.Area, req.Page, data, false)
}
