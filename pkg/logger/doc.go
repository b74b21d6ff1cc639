// Package logger builds the slog loggers used across the module.
//
// Loggers write JSON (or text) to stdout and can fan out to Sentry.
// Context extractors add request-scoped attributes such as the request id
// to every record:
//
//	log := logger.New(logger.Config{Level: "debug"}, middlewares.RequestIDExtractor())
//
// NewNope is the default for components that were given no logger.
package logger
