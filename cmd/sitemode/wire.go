package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	site "github.com/map-framework/addon-mode-site"
	"github.com/map-framework/addon-mode-site/internal/config"
	"github.com/map-framework/addon-mode-site/internal/demo"
	"github.com/map-framework/addon-mode-site/middlewares"
	"github.com/map-framework/addon-mode-site/pkg/cache"
	"github.com/map-framework/addon-mode-site/pkg/db"
	"github.com/map-framework/addon-mode-site/pkg/job"
	"github.com/map-framework/addon-mode-site/pkg/page"
	"github.com/map-framework/addon-mode-site/pkg/redis"
	"github.com/map-framework/addon-mode-site/pkg/render"
	"github.com/map-framework/addon-mode-site/pkg/session"
	"github.com/map-framework/addon-mode-site/pkg/sitemode"
	"github.com/map-framework/addon-mode-site/pkg/storage"
)

// server is the assembled application plus what Run needs around it.
type server struct {
	app      *site.App
	engine   *sitemode.Engine
	renderer *render.HTMLRenderer
	shop     *demo.Shop
	runOpts  []site.RunOption
}

// deps are the external connections a configuration asks for.
type deps struct {
	pool  *pgxpool.Pool
	redis goredis.UniversalClient
}

func connect(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{}
	var err error

	if cfg.Database.URL != "" {
		if d.pool, err = db.Connect(ctx, cfg.Database); err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
	}
	if cfg.Session.Store == config.StoreRedis {
		if d.redis, err = redis.Connect(ctx, cfg.Redis); err != nil {
			d.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}
	return d, nil
}

func (d *deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

// templateFS returns the configured template directory, or the embedded demo templates.
func templateFS(cfg *config.Config) (fs.FS, []string) {
	if cfg.Templates.Dir == "" {
		return demo.Templates(), demo.Partials
	}
	return os.DirFS(cfg.Templates.Dir), cfg.Templates.Partials
}

func newRegistry(cfg *config.Config, log *slog.Logger, shop *demo.Shop) *page.Registry {
	fsys, _ := templateFS(cfg)
	reg := page.NewRegistry(fsys,
		page.WithPattern(cfg.Templates.Pattern),
		page.WithLogger(log),
	)
	demo.Register(reg, shop)
	return reg
}

func build(ctx context.Context, cfg *config.Config, d *deps, log *slog.Logger) (*server, error) {
	var (
		store    session.Store
		jobs     *job.Manager
		runOpts  []site.RunOption
		checks   []site.HealthOption
		shutdown []func(context.Context) error
	)

	switch cfg.Session.Store {
	case config.StoreMemory:
		mem := cache.NewMemory[*session.Session]()
		store = session.NewCacheStore(mem)
		shutdown = append(shutdown, func(context.Context) error { return mem.Close() })

	case config.StoreRedis:
		rc := cache.NewRedis[*session.Session](d.redis, cache.JSON[*session.Session]{}, cache.WithPrefix("site:session:"))
		store = session.NewCacheStore(rc)
		checks = append(checks, site.WithReadinessCheck("redis", redis.Healthcheck(d.redis)))
		shutdown = append(shutdown, redis.Shutdown(d.redis))

	case config.StorePostgres:
		if err := session.Migrate(ctx, d.pool, log); err != nil {
			return nil, err
		}
		if err := job.Migrate(ctx, d.pool, log); err != nil {
			return nil, err
		}
		pg := session.NewPostgresStore(d.pool)
		store = pg

		var err error
		jobs, err = job.NewManager(d.pool,
			job.WithLogger(log),
			job.WithScheduledTask(session.NewPurgeTask(pg, cfg.Session.PurgeSchedule, log)),
		)
		if err != nil {
			return nil, err
		}
		checks = append(checks, site.WithReadinessCheck("jobs", job.Healthcheck(jobs)))
	}

	if d.pool != nil {
		checks = append(checks, site.WithReadinessCheck("database", db.Healthcheck(d.pool)))
		shutdown = append(shutdown, db.Shutdown(d.pool))
	}

	sink, err := debugSink(cfg)
	if err != nil {
		return nil, err
	}

	shop := demo.NewShop(demoStock)
	engine := sitemode.New(newRegistry(cfg, log, shop),
		sitemode.WithConfig(cfg.Site.Config),
		sitemode.WithLogger(log),
		sitemode.WithDebugSink(sink),
	)

	_, partials := templateFS(cfg)
	renderer := render.NewHTML(
		render.WithPartials(partials...),
		render.WithCacheTTL(cfg.Templates.CacheTTL),
		render.WithLogger(log),
	)
	shutdown = append(shutdown, func(context.Context) error { return renderer.Close() })

	opts := []site.Option{
		site.WithLogger(log),
		site.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
		site.WithSession(store,
			site.WithSessionCookieName(cfg.Session.CookieName),
			site.WithSessionMaxAge(cfg.Session.MaxAge),
			site.WithSessionSecure(cfg.Session.Secure),
		),
		site.WithHandlers(site.NewSiteHandler(engine, renderer,
			site.WithSitePrefix(cfg.Site.Prefix),
			site.WithXMLView(cfg.Site.XMLView),
		)),
		site.WithErrorHandler(site.FailurePageErrorHandler),
		site.WithHealthChecks(checks...),
	}
	if jobs != nil {
		opts = append(opts, site.WithJobs(jobs))
	}
	if cfg.Server.StaticDir != "" {
		opts = append(opts, site.WithStaticFiles("/static/", os.DirFS(cfg.Server.StaticDir), "."))
	}

	runOpts = append(runOpts,
		site.Address(cfg.Server.Address),
		site.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		site.Logger(log),
	)
	for _, fn := range shutdown {
		runOpts = append(runOpts, site.ShutdownHook(fn))
	}

	return &server{
		app:      site.New(opts...),
		engine:   engine,
		renderer: renderer,
		shop:     shop,
		runOpts:  runOpts,
	}, nil
}

// debugSink picks where assembled documents go when site.debug_response_file is on.
func debugSink(cfg *config.Config) (sitemode.DebugSink, error) {
	if cfg.Site.DebugStorageKey == "" {
		return sitemode.NewFileSink(cfg.Site.DebugDir), nil
	}
	st, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("debug storage: %w", err)
	}
	return sitemode.NewStorageSink(st, cfg.Site.DebugStorageKey), nil
}
