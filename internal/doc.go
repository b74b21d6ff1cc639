// Package internal provides the HTTP core of the site mode server.
//
// This package is internal and should not be used directly. Import
// "github.com/map-framework/addon-mode-site" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: routing, middleware, sessions, health endpoints and graceful shutdown
//   - Context: request and response access, session and request-scoped logging
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a Router
//   - SiteHandler: serves site pages through a sitemode.Engine
//
// # Site pages
//
// SiteHandler maps /{area}/{page}/* onto the page registry. Extra path
// segments become the page's inputs. The form records of the visitor live in
// the session; a session is started on the first visit.
//
//	engine := sitemode.New(registry, sitemode.WithLogger(log))
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithSession(store),
//	    internal.WithHandlers(internal.NewSiteHandler(engine, render.NewHTML())),
//	    internal.WithErrorHandler(internal.FailurePageErrorHandler),
//	)
//
// # Sessions
//
// The session is loaded lazily on the first Context.Session call and saved
// right before the response starts when it changed. Handlers must therefore
// finish mutating the session before writing.
//
// # Errors
//
// Handlers return errors. *HTTPError values carry their status code; every
// other error answers 500. The response is buffered by Context.Render, so a
// failing template never leaves a partial page behind.
package internal
