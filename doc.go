// Package site serves site pages: it dispatches requests to page handlers and
// drives their HTML forms across requests.
//
// Every response reports exactly one form status. A page view without a
// submission is INIT, or RESTORED when an earlier rejected submission is
// pending. A resubmission of an already accepted form is REPEATED. Fresh
// submissions are bound, validated and checked by the page, and answered
// ACCEPTED or REJECTED. Pending form records live in the visitor's session.
//
// # Quick Start
//
//	registry := page.NewRegistry(templates)
//	registry.Register("shop", "checkout", func(req *page.Request) page.Page {
//	    return &Checkout{Base: page.NewBase(req)}
//	})
//
//	app := site.New(
//	    site.WithLogger(log),
//	    site.WithSession(session.NewCacheStore(cache.NewMemory[*session.Session]())),
//	    site.WithHandlers(site.NewSiteHandler(sitemode.New(registry), render.NewHTML())),
//	    site.WithErrorHandler(site.FailurePageErrorHandler),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Pages
//
// A page embeds *page.Base and declares its fields explicitly:
//
//	type Checkout struct {
//	    *page.Base
//	    Qty int
//	}
//
//	func (p *Checkout) Fields() []*form.Field {
//	    return []*form.Field{form.Int("qty", &p.Qty, form.Min(1), form.Max(10))}
//	}
//
//	func (p *Checkout) Check(ctx context.Context) (form.Outcome, error) {
//	    if p.Qty > stock {
//	        return form.Reject("OUT_OF_STOCK", "qty"), nil
//	    }
//	    return form.Accept(), nil
//	}
//
// # Handlers
//
// Other routes are declared by types implementing [Handler]:
//
//	func (h *Pages) Routes(r site.Router) {
//	    r.GET("/", h.home)
//	}
//
// # Shutdown
//
// Run handles SIGINT and SIGTERM. A job manager given with WithJobs starts
// before the listener and stops first during shutdown. Register other
// cleanup with ShutdownHook:
//
//	site.Run(app, site.Address(":8080"), site.ShutdownHook(db.Shutdown(pool)))
package site
