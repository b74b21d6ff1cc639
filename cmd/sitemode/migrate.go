package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/map-framework/addon-mode-site/pkg/db"
	"github.com/map-framework/addon-mode-site/pkg/job"
	"github.com/map-framework/addon-mode-site/pkg/logger"
	"github.com/map-framework/addon-mode-site/pkg/session"
)

var errNoDatabase = errors.New("database.url is not set")

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the session and job queue schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Database.URL == "" {
				return errNoDatabase
			}
			ctx := cmd.Context()
			log := logger.New(c.cfg.Logger)

			pool, err := db.Connect(ctx, c.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := session.Migrate(ctx, pool, log); err != nil {
				return err
			}
			if err := job.Migrate(ctx, pool, log); err != nil {
				return err
			}
			log.Info("schema up to date", slog.String("table", session.MigrationsTable))
			return nil
		},
	}
}
