// Package middlewares provides HTTP middleware for the site server.
//
// # Request ID
//
// RequestID assigns an ID to each request. An ID from an upstream header is
// kept, otherwise a UUID is generated. Pair it with RequestIDExtractor so
// every log record of the request carries the ID:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//	app := site.New(
//	    site.WithLogger(log),
//	    site.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	    ),
//	)
//
// # Recover
//
// Recover converts panics into a *PanicError handed to the app error
// handler, which answers 500. Register it after RequestID so the panic log
// carries the request ID.
package middlewares
