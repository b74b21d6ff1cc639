package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	site "github.com/map-framework/addon-mode-site"
	"github.com/map-framework/addon-mode-site/middlewares"
	"github.com/map-framework/addon-mode-site/pkg/logger"
	"github.com/map-framework/addon-mode-site/pkg/render"
)

// demoStock is the initial stock of the demo shop.
const demoStock = 25

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := c.cfg
			log := logger.NewWithSentry(cfg.Logger, cfg.Sentry, middlewares.RequestIDExtractor())

			d, err := connect(ctx, cfg)
			if err != nil {
				return err
			}

			srv, err := build(ctx, cfg, d, log)
			if err != nil {
				d.close()
				return err
			}

			if cfg.Templates.Watch {
				go func() {
					if err := render.Watch(ctx, cfg.Templates.Dir, srv.renderer, log); err != nil {
						log.Error("template watcher stopped", slog.Any("error", err))
					}
				}()
			}

			log.Info("site mode ready",
				slog.Any("pages", srv.engine.Registry().Pages()),
				slog.String("session_store", cfg.Session.Store),
			)
			return site.Run(srv.app, append(srv.runOpts, site.WithContext(ctx))...)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.address)")
	return cmd
}
