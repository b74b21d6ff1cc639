package session

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/map-framework/addon-mode-site/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable tracks the session schema version.
const MigrationsTable = "site_session_migrations"

// Migrations returns the embedded schema for PostgresStore.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(fmt.Sprintf("session: embedded migrations: %v", err))
	}
	return sub
}

// Migrate creates or upgrades the site_sessions table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return db.Migrate(ctx, pool, Migrations(), MigrationsTable, log)
}
