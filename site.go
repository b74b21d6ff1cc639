package site

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/map-framework/addon-mode-site/internal"
	"github.com/map-framework/addon-mode-site/pkg/health"
	"github.com/map-framework/addon-mode-site/pkg/job"
	"github.com/map-framework/addon-mode-site/pkg/render"
	"github.com/map-framework/addon-mode-site/pkg/session"
	"github.com/map-framework/addon-mode-site/pkg/sitemode"
)

// Type aliases - public API
type (
	// App orchestrates routing, sessions, background jobs and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// SessionOption configures the session manager.
	SessionOption = internal.SessionOption

	// Session is a visitor session.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store

	// ResponseWriter wraps http.ResponseWriter with before-write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error with an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// SiteHandler serves site pages.
	SiteHandler = internal.SiteHandler

	// SiteOption configures a SiteHandler.
	SiteOption = internal.SiteOption

	// JobManager runs scheduled background tasks.
	JobManager = job.Manager
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := site.New(
//	    site.WithLogger(log),
//	    site.WithSession(store),
//	    site.WithHandlers(site.NewSiteHandler(engine, renderer)),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run serves app and blocks until SIGINT, SIGTERM or cancellation of the
// context given with WithContext.
func Run(app *App, opts ...RunOption) error {
	return internal.Run(app, opts...)
}

// NewSiteHandler returns a handler serving the pages of engine at
// /{area}/{page}, rendered through renderer.
//
// Example:
//
//	registry := page.NewRegistry(templates)
//	registry.Register("shop", "checkout", checkout.New)
//
//	site.WithHandlers(site.NewSiteHandler(sitemode.New(registry), render.NewHTML()))
func NewSiteHandler(engine *sitemode.Engine, renderer render.Renderer, opts ...SiteOption) *SiteHandler {
	return internal.NewSiteHandler(engine, renderer, opts...)
}

// WithSitePrefix mounts site pages under prefix.
func WithSitePrefix(prefix string) SiteOption {
	return internal.WithSitePrefix(prefix)
}

// WithXMLView answers ?xml=true with the raw response document.
// Enable it for development only: the document may carry session values.
func WithXMLView(enabled bool) SiteOption {
	return internal.WithXMLView(enabled)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	site.New(
//	    site.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live) always answers OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	site.WithHealthChecks(
//	    site.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithSession enables cookie sessions. Site pages keep their pending form
// records in the session.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithJobs attaches a job manager. It starts before the server accepts
// requests and stops during shutdown.
func WithJobs(m *JobManager) Option {
	return internal.WithJobs(m)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the HTTP server address. Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger overrides the logger used for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server accepts requests.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	site.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Session options

func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

func WithSessionMaxAge(seconds int) SessionOption {
	return internal.WithSessionMaxAge(seconds)
}

func WithSessionDomain(domain string) SessionOption {
	return internal.WithSessionDomain(domain)
}

func WithSessionPath(path string) SessionOption {
	return internal.WithSessionPath(path)
}

func WithSessionSecure(secure bool) SessionOption {
	return internal.WithSessionSecure(secure)
}

// Errors

var (
	ErrBadRequest = internal.ErrBadRequest
	ErrForbidden  = internal.ErrForbidden
	ErrNotFound   = internal.ErrNotFound
	ErrInternal   = internal.ErrInternal
	WithError     = internal.WithError
	AsHTTPError   = internal.AsHTTPError
	StatusOf      = internal.StatusOf

	// DefaultErrorHandler answers errors with their status text.
	DefaultErrorHandler = internal.DefaultErrorHandler

	// FailurePageErrorHandler answers errors with a minimal HTML page.
	FailurePageErrorHandler = internal.FailurePageErrorHandler
)

// Helpers

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Query returns the query parameter name converted to T, or the zero value.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// SessionValue returns the session value under key as T.
func SessionValue[T any](sess *Session, key string) (T, error) {
	return session.Value[T](sess, key)
}

// SessionValueOr returns the session value under key, or defaultVal.
func SessionValueOr[T any](sess *Session, key string, defaultVal T) T {
	return session.ValueOr(sess, key, defaultVal)
}
