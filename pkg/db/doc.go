// Package db opens the pgx pool used by Postgres session storage and the
// River job queue, and applies embedded goose migrations.
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	err = session.Migrate(ctx, pool, log)
package db
